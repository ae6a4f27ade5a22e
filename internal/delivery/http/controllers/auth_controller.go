package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "portalevents/internal/delivery/http/helpers"
	"portalevents/internal/delivery/http/middleware"
	"portalevents/internal/domain"
)

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /api/auth/login
type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
	Mode      domain.Mode     `json:"mode"`
	Operator  domain.Operator `json:"operator"`
}

// LoginSuccessResponse is the success response envelope for POST /api/auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse `json:"data"`
	Error *h.APIError   `json:"error"`
}

// SessionSuccessResponse is the success response envelope for GET /api/auth/session (200).
type SessionSuccessResponse struct {
	Data  domain.Session `json:"data"`
	Error *h.APIError    `json:"error"`
}

// LogoutResponse is the data of a successful logout.
type LogoutResponse struct {
	Status string `json:"status"`
}

type AuthController struct {
	Logger   *slog.Logger
	Sessions domain.SessionService
}

func NewAuthController(logger *slog.Logger, sessions domain.SessionService) *AuthController {
	return &AuthController{
		Logger:   logger,
		Sessions: sessions,
	}
}

// Login godoc
// @Summary Sign in
// @Description Checks the operator credentials and returns a bearer token for the admin endpoints. Any failure returns the same message.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrInvalidCredentials.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresAt: res.Session.ExpiresAt,
		Mode:      res.Session.Mode,
		Operator:  res.Session.Operator,
	})
}

// Logout godoc
// @Summary Sign out
// @Description Ends the current session. The token is rejected afterwards.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data.status: logged_out"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Sessions.Logout(r.Context(), session.ID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to end session")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LogoutResponse{Status: "logged_out"})
}

// Session godoc
// @Summary Current session
// @Description Returns the session of the bearer token, including the operator and the auth mode.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/auth/session [get]
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, session)
}
