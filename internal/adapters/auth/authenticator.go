package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portalevents/internal/domain"
)

// Demo credentials accepted when no auth backend is configured.
const (
	DemoEmail    = "admin@demo.com"
	DemoPassword = "demo123"
)

type demoAuthenticator struct{}

// NewDemoAuthenticator returns an Authenticator that only accepts the fixed demo credential pair.
func NewDemoAuthenticator() domain.Authenticator {
	return demoAuthenticator{}
}

func (demoAuthenticator) SignIn(_ context.Context, email, password string) (*domain.Operator, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(DemoEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(DemoPassword)) == 1
	if !emailOK || !passOK {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Operator{
		ID:    "demo-user-id",
		Email: DemoEmail,
		Name:  "Demo User",
	}, nil
}

func (demoAuthenticator) Mode() domain.Mode { return domain.ModeDemo }

type disabledAuthenticator struct{}

// NewDisabledAuthenticator returns an Authenticator that refuses every sign-in.
// It stands in for live auth when the event store is live but sessions cannot be signed.
func NewDisabledAuthenticator() domain.Authenticator {
	return disabledAuthenticator{}
}

func (disabledAuthenticator) SignIn(context.Context, string, string) (*domain.Operator, error) {
	return nil, fmt.Errorf("%w: sign-in is disabled", domain.ErrInvalidCredentials)
}

func (disabledAuthenticator) Mode() domain.Mode { return domain.ModeLive }

type operatorAuthenticator struct {
	repo   domain.OperatorRepository
	hasher domain.PasswordHasher
}

// NewOperatorAuthenticator returns an Authenticator backed by the operators table.
func NewOperatorAuthenticator(repo domain.OperatorRepository, hasher domain.PasswordHasher) domain.Authenticator {
	return &operatorAuthenticator{repo: repo, hasher: hasher}
}

func (a *operatorAuthenticator) SignIn(ctx context.Context, email, password string) (*domain.Operator, error) {
	op, err := a.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}
	if err := a.hasher.Compare(op.PasswordHash, op.Salt, password); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	}
	return op, nil
}

func (a *operatorAuthenticator) Mode() domain.Mode { return domain.ModeLive }

// EnsureOperator creates the bootstrap operator if no operator with that email exists yet.
func EnsureOperator(ctx context.Context, repo domain.OperatorRepository, hasher domain.PasswordHasher, email, password string, logger *slog.Logger) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up operator: %w", err)
	}
	salt, err := hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := hasher.Hash(salt, password)
	if err != nil {
		return err
	}
	op := domain.NewOperator(email, "Admin", time.Now())
	op.Salt = salt
	op.PasswordHash = hash
	if err := repo.Create(ctx, op); err != nil {
		return fmt.Errorf("create operator: %w", err)
	}
	logger.Info("bootstrap operator created", "email", email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
