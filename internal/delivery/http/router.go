package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "portalevents/docs"
	"portalevents/internal/delivery/http/controllers"
	"portalevents/internal/delivery/http/middleware"
	"portalevents/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events  *controllers.EventController
	Uploads *controllers.UploadController
	Contact *controllers.ContactController
	Auth    *controllers.AuthController
	Health  *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Admin routes require a bearer token issued by the session gate.
func NewRouter(c Controllers, sessions domain.SessionService, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(sessions, logger)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Public
	mux.HandleFunc("GET /api/categories", c.Events.ListCategories)
	mux.HandleFunc("GET /api/categories/{category}/events", c.Events.ListEventsByCategory)
	mux.HandleFunc("POST /api/contact", c.Contact.SendInquiry)

	// Auth
	mux.HandleFunc("POST /api/auth/login", c.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", requireAuth(c.Auth.Logout))
	mux.HandleFunc("GET /api/auth/session", requireAuth(c.Auth.Session))

	// Admin
	mux.HandleFunc("POST /api/upload", requireAuth(c.Uploads.Upload))
	mux.HandleFunc("POST /api/events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("POST /api/events/publish", requireAuth(c.Events.PublishEvent))
	mux.HandleFunc("DELETE /api/events/{eventID}", requireAuth(c.Events.DeleteEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
