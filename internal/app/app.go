// Package app wires configuration, backends, services and HTTP delivery into one handler.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"portalevents/config"
	"portalevents/internal/adapters/auth"
	"portalevents/internal/adapters/email"
	"portalevents/internal/adapters/imageproc"
	"portalevents/internal/adapters/storage"
	httpdelivery "portalevents/internal/delivery/http"
	"portalevents/internal/delivery/http/controllers"
	"portalevents/internal/delivery/http/middleware"
	"portalevents/internal/domain"
	"portalevents/internal/platform"
	"portalevents/internal/repository/demo"
	"portalevents/internal/repository/postgres"
	"portalevents/internal/services"
)

// App is the assembled application.
type App struct {
	Handler  http.Handler
	Backends *platform.Backends

	guard  *platform.Guard
	logger *slog.Logger
}

// New resolves the backends once and builds every component on top of them.
// Components whose backend is unavailable run on their demo variant.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	return NewWithGuard(ctx, cfg, platform.NewGuard(cfg, logger), logger)
}

// NewWithGuard is New with a caller-supplied Guard.
func NewWithGuard(ctx context.Context, cfg *config.Config, guard *platform.Guard, logger *slog.Logger) (*App, error) {
	b := guard.Backends(ctx)

	eventRepo, err := newEventRepository(b)
	if err != nil {
		return nil, err
	}
	imageService := services.NewImageService(newImageStore(cfg, b, logger), logger, cfg.Storage.UploadTimeout)
	eventService := services.NewEventService(eventRepo, imageService, logger, cfg.RequestTimeout)

	mailer := newMailer(cfg, b, logger)
	inquiryService := services.NewInquiryService(mailer, email.NewTemplateRenderer(), cfg.Mail.To, cfg.SiteName, logger, cfg.RequestTimeout)

	sessionService, err := newSessionService(ctx, cfg, b, logger)
	if err != nil {
		return nil, err
	}

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:  controllers.NewEventController(logger, eventService, cfg.Storage.MaxFileBytes),
		Uploads: controllers.NewUploadController(logger, imageService, cfg.Storage.MaxFileBytes),
		Contact: controllers.NewContactController(logger, inquiryService),
		Auth:    controllers.NewAuthController(logger, sessionService),
		Health:  controllers.NewHealthController(b),
	}, sessionService, logger)

	var handler http.Handler = router
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	return &App{Handler: handler, Backends: b, guard: guard, logger: logger}, nil
}

// Close releases backend connections.
func (a *App) Close() error {
	return a.guard.Close()
}

func newEventRepository(b *platform.Backends) (domain.EventRepository, error) {
	if b.Database.Live() {
		return postgres.NewEventRepository(b.DB), nil
	}
	dataset, err := demo.LoadDataset()
	if err != nil {
		return nil, fmt.Errorf("load demo dataset: %w", err)
	}
	return demo.NewEventRepository(dataset), nil
}

func newImageStore(cfg *config.Config, b *platform.Backends, logger *slog.Logger) domain.ImageStore {
	if !b.Storage.Live() {
		return storage.NewPlaceholderStore()
	}
	switch b.Storage.Provider {
	case storage.ProviderS3:
		s3cfg := storage.S3Config{
			Bucket:          cfg.Storage.S3.Bucket,
			Region:          cfg.Storage.S3.Region,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			Endpoint:        cfg.Storage.S3.Endpoint,
			PublicBaseURL:   cfg.Storage.S3.PublicBaseURL,
			Folder:          cfg.Storage.Folder,
		}
		return storage.NewS3Store(storage.NewS3Client(s3cfg), s3cfg, imageproc.NewDefaultTransformer(), logger)
	case storage.ProviderCloudinary:
		cldcfg := storage.CloudinaryConfig{
			CloudName: cfg.Storage.Cloudinary.CloudName,
			APIKey:    cfg.Storage.Cloudinary.APIKey,
			APISecret: cfg.Storage.Cloudinary.APISecret,
			Folder:    cfg.Storage.Folder,
		}
		client, err := storage.NewCloudinaryClient(cldcfg)
		if err != nil {
			logger.Warn("image storage unavailable, falling back to demo mode", "err", err)
			b.Storage = platform.Status{Mode: domain.ModeDemo, Provider: storage.ProviderCloudinary, Reason: err.Error()}
			return storage.NewPlaceholderStore()
		}
		return storage.NewCloudinaryStore(client, cldcfg, logger)
	default:
		return storage.NewPlaceholderStore()
	}
}

func newMailer(cfg *config.Config, b *platform.Backends, logger *slog.Logger) domain.Mailer {
	if !b.Mail.Live() {
		return email.NewNoopMailer(logger)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:     cfg.Mail.Provider,
		FromAddress:  cfg.Mail.FromAddress,
		FromName:     cfg.Mail.FromName,
		ResendAPIKey: cfg.Mail.ResendAPIKey,
		SES: email.SESConfig{
			Region:             cfg.Mail.SES.Region,
			AccessKeyID:        cfg.Mail.SES.AccessKeyID,
			SecretAccessKey:    cfg.Mail.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SES.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Warn("mailer unavailable, falling back to demo mode", "err", err)
		b.Mail = platform.Status{Mode: domain.ModeDemo, Provider: cfg.Mail.Provider, Reason: err.Error()}
		return email.NewNoopMailer(logger)
	}
	return mailer
}

func newSessionService(ctx context.Context, cfg *config.Config, b *platform.Backends, logger *slog.Logger) (domain.SessionService, error) {
	var authenticator domain.Authenticator
	secret := cfg.Auth.JWTSecret
	if b.Auth.Live() {
		operators := postgres.NewOperatorRepository(b.DB)
		hasher := auth.NewBcryptHasher(auth.DefaultBcryptCost)
		if err := auth.EnsureOperator(ctx, operators, hasher, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, logger); err != nil {
			logger.Warn("failed to bootstrap operator", "err", err)
		}
		authenticator = auth.NewOperatorAuthenticator(operators, hasher)
	} else if b.Database.Live() {
		logger.Warn("admin sign-in disabled: AUTH_JWT_SECRET is not set while the event store is live")
		authenticator = auth.NewDisabledAuthenticator()
	} else {
		authenticator = auth.NewDemoAuthenticator()
	}
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate signing secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
		logger.Info("AUTH_JWT_SECRET not set, using a per-process signing secret")
	}
	tokens := auth.NewJWTTokens(secret)
	return services.NewSessionService(authenticator, tokens, tokens, services.NewMemorySessionStore(), cfg.Auth.TokenTTL, logger, cfg.RequestTimeout), nil
}
