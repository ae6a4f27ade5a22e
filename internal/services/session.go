package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"portalevents/internal/domain"
)

type sessionService struct {
	authenticator  domain.Authenticator
	issuer         domain.TokenIssuer
	verifier       domain.TokenVerifier
	store          domain.SessionStore
	ttl            time.Duration
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewSessionService creates a SessionService. Tokens reference sessions held in store.
func NewSessionService(authenticator domain.Authenticator,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	store domain.SessionStore,
	ttl time.Duration,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		authenticator:  authenticator,
		issuer:         issuer,
		verifier:       verifier,
		store:          store,
		ttl:            ttl,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// Login checks the credentials and opens a session. Every failure is reported as ErrInvalidCredentials.
func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	op, err := s.authenticator.SignIn(ctx, email, password)
	if err != nil {
		s.logger.WarnContext(ctx, "sign in failed", "mode", s.authenticator.Mode(), "err", err)
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Operator:  *op,
		Mode:      s.authenticator.Mode(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	token, err := s.issuer.Issue(session.ID, op, session.IssuedAt, session.ExpiresAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to sign session token", "err", err)
		return nil, domain.ErrInvalidCredentials
	}
	s.store.Put(session)
	s.logger.InfoContext(ctx, "operator signed in", "operator_id", op.ID, "mode", session.Mode)
	return &domain.LoginResult{Token: token, Session: session}, nil
}

// Logout ends the session. Ending an unknown session is not an error.
func (s *sessionService) Logout(ctx context.Context, sessionID string) error {
	if s.store.Delete(sessionID) {
		s.logger.InfoContext(ctx, "operator signed out", "session_id", sessionID)
	}
	return nil
}

// Authenticate verifies the token and returns the active session it references.
func (s *sessionService) Authenticate(_ context.Context, token string) (*domain.Session, error) {
	id, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	session, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: session not found", domain.ErrUnauthorized)
	}
	if session.Expired(s.now()) {
		s.store.Delete(id)
		return nil, fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
	}
	return session, nil
}
