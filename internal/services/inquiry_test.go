package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalevents/internal/domain"
)

func validInquiry() domain.Inquiry {
	return domain.Inquiry{
		Name:        " Ana Souza ",
		Email:       "ana@example.com",
		Phone:       "11999999999",
		EventType:   "casamento",
		Date:        "2026-12-01",
		Guests:      "150",
		Description: "Cerimônia e recepção",
	}
}

func TestInquiryService_SendInquiry(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewInquiryService(mailer, renderer, []string{"contato@portal.com"}, "Portal das Águas", testLogger, testTimeout)

	receipt, err := svc.SendInquiry(ctx, validInquiry())
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchReceipt{ID: "msg-1", Provider: "fake"}, receipt)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, []string{"contato@portal.com"}, msg.To)
	assert.Equal(t, "ana@example.com", msg.ReplyTo)
	assert.Equal(t, "subject:inquiry", msg.Subject)
	assert.Equal(t, "<p>Ana Souza</p>", msg.HTML)

	data := renderer.data.(domain.InquiryEmailData)
	assert.Equal(t, "Portal das Águas", data.SiteName)
}

func TestInquiryService_SendInquiry_validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Inquiry)
	}{
		{"missing name", func(i *domain.Inquiry) { i.Name = "  " }},
		{"malformed email", func(i *domain.Inquiry) { i.Email = "ana@" }},
		{"missing guests", func(i *domain.Inquiry) { i.Guests = "" }},
		{"missing description", func(i *domain.Inquiry) { i.Description = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			svc := NewInquiryService(mailer, &fakeRenderer{}, []string{"c@portal.com"}, "Portal", testLogger, testTimeout)
			in := validInquiry()
			tt.mutate(&in)
			_, err := svc.SendInquiry(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestInquiryService_SendInquiry_locationOptional(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewInquiryService(mailer, &fakeRenderer{}, []string{"c@portal.com"}, "Portal", testLogger, testTimeout)
	in := validInquiry()
	in.Location = ""
	_, err := svc.SendInquiry(context.Background(), in)
	require.NoError(t, err)
}

func TestInquiryService_SendInquiry_failures(t *testing.T) {
	t.Run("send fails once, no retry", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("provider down")}
		svc := NewInquiryService(mailer, &fakeRenderer{}, []string{"c@portal.com"}, "Portal", testLogger, testTimeout)
		_, err := svc.SendInquiry(context.Background(), validInquiry())
		require.ErrorIs(t, err, domain.ErrDispatch)
		assert.Len(t, mailer.sent, 1)
	})

	t.Run("render fails", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewInquiryService(mailer, &fakeRenderer{err: errors.New("bad template")}, []string{"c@portal.com"}, "Portal", testLogger, testTimeout)
		_, err := svc.SendInquiry(context.Background(), validInquiry())
		require.ErrorIs(t, err, domain.ErrDispatch)
		assert.Empty(t, mailer.sent)
	})
}
