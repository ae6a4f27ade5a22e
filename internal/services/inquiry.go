package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portalevents/internal/domain"
)

type inquiryService struct {
	mailer         domain.Mailer
	renderer       domain.EmailTemplateRenderer
	recipients     []string
	siteName       string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewInquiryService returns an InquiryService that renders the "inquiry" template and sends it to recipients.
func NewInquiryService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipients []string, siteName string, logger *slog.Logger, timeout time.Duration) domain.InquiryService {
	return &inquiryService{
		mailer:         mailer,
		renderer:       renderer,
		recipients:     recipients,
		siteName:       siteName,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// SendInquiry validates the submission and makes exactly one send attempt.
// Replies go to the visitor's address.
func (s *inquiryService) SendInquiry(ctx context.Context, inquiry domain.Inquiry) (*domain.DispatchReceipt, error) {
	inquiry = inquiry.Normalize()
	if err := inquiry.Validate(); err != nil {
		return nil, err
	}

	subject, htmlBody, textBody, err := s.renderer.Render("inquiry", domain.InquiryEmailData{Inquiry: inquiry, SiteName: s.siteName})
	if err != nil {
		return nil, fmt.Errorf("%w: render inquiry template: %w", domain.ErrDispatch, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id, err := s.mailer.Send(ctx, domain.Message{
		To:      s.recipients,
		ReplyTo: inquiry.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDispatch, err)
	}
	s.logger.InfoContext(ctx, "inquiry dispatched", "provider", s.mailer.Provider(), "id", id, "event_type", inquiry.EventType)
	return &domain.DispatchReceipt{ID: id, Provider: s.mailer.Provider()}, nil
}
