// Package platform resolves, once per process, which backends run live and which fall back to demo mode.
package platform

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"portalevents/config"
	"portalevents/internal/domain"
	"portalevents/internal/repository/postgres"
)

const pingTimeout = 5 * time.Second

// AuthDisabled is the auth Status provider when every sign-in is refused.
const AuthDisabled = "disabled"

// Status is the resolved mode of one backend. Reason explains a demo fallback.
type Status struct {
	Mode     domain.Mode `json:"mode"`
	Provider string      `json:"provider,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

// Live reports whether the backend runs against its real service.
func (s Status) Live() bool { return s.Mode == domain.ModeLive }

// Backends is the outcome of the initialisation step. DB is nil unless Database is live.
type Backends struct {
	DB       *sql.DB
	Database Status
	Storage  Status
	Auth     Status
	Mail     Status
}

// Opener opens and pings the event store.
type Opener func(ctx context.Context, dsn string) (*sql.DB, error)

// Guard performs the single process-wide backend initialisation.
// Failures never escape: they are logged and recorded as a demo Status.
type Guard struct {
	cfg    *config.Config
	logger *slog.Logger
	open   Opener

	once     sync.Once
	backends *Backends
}

// NewGuard returns a Guard that opens the database with lib/pq.
func NewGuard(cfg *config.Config, logger *slog.Logger) *Guard {
	return NewGuardWithOpener(cfg, logger, postgres.Open)
}

// NewGuardWithOpener returns a Guard that opens the database with open.
func NewGuardWithOpener(cfg *config.Config, logger *slog.Logger, open Opener) *Guard {
	return &Guard{cfg: cfg, logger: logger, open: open}
}

// Backends runs the initialisation on first call and returns the cached result afterwards.
func (g *Guard) Backends(ctx context.Context) *Backends {
	g.once.Do(func() {
		g.backends = g.resolve(ctx)
	})
	return g.backends
}

// IsBackendConfigured reports whether the event store is live.
func (g *Guard) IsBackendConfigured(ctx context.Context) bool {
	return g.Backends(ctx).Database.Live()
}

// Close releases the database pool, if one was opened.
func (g *Guard) Close() error {
	if g.backends == nil || g.backends.DB == nil {
		return nil
	}
	return g.backends.DB.Close()
}

func (g *Guard) resolve(ctx context.Context) *Backends {
	b := &Backends{}
	b.DB, b.Database = g.database(ctx)
	b.Storage = g.storage()
	b.Mail = g.mail()
	b.Auth = g.auth(b.Database)

	g.logger.Info("backends resolved",
		"database", b.Database.Mode,
		"storage", b.Storage.Mode,
		"auth", b.Auth.Mode,
		"mail", b.Mail.Mode,
	)
	return b
}

func (g *Guard) database(ctx context.Context) (db *sql.DB, status Status) {
	if !g.cfg.DatabaseConfigured() {
		return nil, demo("", "DATABASE_URL is not set")
	}
	defer func() {
		if r := recover(); r != nil {
			db = nil
			status = g.fallback("database", "postgres", fmt.Errorf("panic during init: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	conn, err := g.open(ctx, g.cfg.Database.URL)
	if err != nil {
		return nil, g.fallback("database", "postgres", err)
	}
	if err := postgres.EnsureSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, g.fallback("database", "postgres", fmt.Errorf("ensure schema: %w", err))
	}
	return conn, Status{Mode: domain.ModeLive, Provider: "postgres"}
}

func (g *Guard) storage() Status {
	provider := g.cfg.Storage.Provider
	if !g.cfg.StorageConfigured() {
		if provider == "" {
			return demo("", "STORAGE_PROVIDER is not set")
		}
		return demo(provider, fmt.Sprintf("incomplete %s configuration", provider))
	}
	return Status{Mode: domain.ModeLive, Provider: provider}
}

func (g *Guard) mail() Status {
	provider := g.cfg.Mail.Provider
	if !g.cfg.MailConfigured() {
		if len(g.cfg.Mail.To) == 0 {
			return demo(provider, "MAIL_TO is not set")
		}
		if provider == "" {
			return demo("", "MAIL_PROVIDER is not set")
		}
		return demo(provider, fmt.Sprintf("incomplete %s configuration", provider))
	}
	return Status{Mode: domain.ModeLive, Provider: provider}
}

func (g *Guard) auth(database Status) Status {
	if g.cfg.Auth.JWTSecret == "" {
		if database.Live() {
			// The demo credentials are public; they must never reach a live event store.
			return demo(AuthDisabled, "AUTH_JWT_SECRET is not set, admin sign-in is disabled while the event store is live")
		}
		return demo("", "AUTH_JWT_SECRET is not set")
	}
	if !database.Live() {
		return demo("", "operator store unavailable")
	}
	return Status{Mode: domain.ModeLive, Provider: "operators"}
}

func (g *Guard) fallback(backend, provider string, err error) Status {
	g.logger.Warn("backend unavailable, falling back to demo mode", "backend", backend, "err", err)
	return demo(provider, err.Error())
}

func demo(provider, reason string) Status {
	return Status{Mode: domain.ModeDemo, Provider: provider, Reason: reason}
}
