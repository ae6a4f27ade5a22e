package domain

import (
	"context"
	"time"
)

// Operator is an admin allowed to publish and delete events.
// swagger:model Operator
type Operator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewOperator returns a new Operator with the given fields. ID is typically set by the repository on create.
func NewOperator(email, name string, createdAt time.Time) *Operator {
	return &Operator{
		Email:     email,
		Name:      name,
		CreatedAt: createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// OperatorRepository defines the interface for operator storage.
type OperatorRepository interface {
	Create(ctx context.Context, op *Operator) error
	GetByEmail(ctx context.Context, email string) (*Operator, error)
}

// Authenticator checks an email/password pair against the auth backend.
// Every failure is reported as ErrInvalidCredentials (possibly wrapping the cause).
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Operator, error)
	Mode() Mode
}

// Session is an authenticated operator session. It lives in memory only.
type Session struct {
	ID        string    `json:"id"`
	Operator  Operator  `json:"operator"`
	Mode      Mode      `json:"mode"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionStore keeps active sessions keyed by session id.
type SessionStore interface {
	Put(s *Session)
	Get(id string) (*Session, bool)
	Delete(id string) bool
}

// TokenIssuer issues signed tokens that reference a session.
type TokenIssuer interface {
	Issue(sessionID string, op *Operator, issuedAt, expiresAt time.Time) (string, error)
}

// TokenVerifier verifies a token and returns the session id it references.
type TokenVerifier interface {
	Verify(token string) (sessionID string, err error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string
	Session *Session
}

// SessionService gates the admin operations.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*Session, error)
}
