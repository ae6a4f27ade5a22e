package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"portalevents/internal/delivery/http/helpers"
	"portalevents/internal/domain"
)

const (
	msgMissingFields = "Todos os campos obrigatórios devem ser preenchidos"
	msgDispatchError = "Erro ao enviar email. Tente novamente mais tarde."
	msgInternalError = "Erro interno do servidor"
)

const maxContactBody = 64 << 10

// ContactResponse is the body of a successful POST /api/contact.
type ContactResponse struct {
	Success bool                    `json:"success"`
	Data    *domain.DispatchReceipt `json:"data"`
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.InquiryService
}

func NewContactController(logger *slog.Logger, svc domain.InquiryService) *ContactController {
	return &ContactController{Logger: logger, Service: svc}
}

// SendInquiry godoc
// @Summary Send a contact inquiry
// @Description Relays the contact form to the venue inbox with reply-to set to the visitor. Location is optional.
// @Tags contact
// @Accept json
// @Produce json
// @Param inquiry body domain.Inquiry true "Inquiry"
// @Success 200 {object} controllers.ContactResponse
// @Failure 400 {object} controllers.FormErrorResponse
// @Failure 500 {object} controllers.FormErrorResponse
// @Router /api/contact [post]
func (c *ContactController) SendInquiry(w http.ResponseWriter, r *http.Request) {
	var inquiry domain.Inquiry
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody)).Decode(&inquiry); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, FormErrorResponse{Error: msgMissingFields})
		return
	}

	receipt, err := c.Service.SendInquiry(r.Context(), inquiry)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			helpers.WriteJSON(w, http.StatusBadRequest, FormErrorResponse{Error: msgMissingFields})
		case errors.Is(err, domain.ErrDispatch):
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSON(w, http.StatusInternalServerError, FormErrorResponse{Error: msgDispatchError})
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSON(w, http.StatusInternalServerError, FormErrorResponse{Error: msgInternalError})
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ContactResponse{Success: true, Data: receipt})
}
