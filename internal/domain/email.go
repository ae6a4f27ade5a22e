package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Message is a transactional email handed to a Mailer.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the contract for sending emails (infrastructure port).
// Send makes exactly one attempt and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
	Provider() string
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// Inquiry is a contact-form submission. It only lives for the duration of one send request.
// swagger:model Inquiry
type Inquiry struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	EventType   string `json:"eventType" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Guests      GuestCount `json:"guests" validate:"required" swaggertype:"string" example:"150"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description" validate:"required"`
}

// GuestCount is the expected number of guests. The contact form sends it as
// free text ("150", "100 a 200") but JSON clients may send a bare number.
type GuestCount string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (g *GuestCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = GuestCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("guests must be a string or a number")
	}
	*g = GuestCount(n.String())
	return nil
}

// Normalize trims surrounding whitespace from every field.
func (i Inquiry) Normalize() Inquiry {
	return Inquiry{
		Name:        strings.TrimSpace(i.Name),
		Email:       strings.TrimSpace(i.Email),
		Phone:       strings.TrimSpace(i.Phone),
		EventType:   strings.TrimSpace(i.EventType),
		Date:        strings.TrimSpace(i.Date),
		Guests:      GuestCount(strings.TrimSpace(string(i.Guests))),
		Location:    strings.TrimSpace(i.Location),
		Description: strings.TrimSpace(i.Description),
	}
}

// Validate reports missing required fields and a malformed email.
func (i Inquiry) Validate() error {
	return validateStruct(i)
}

// InquiryEmailData holds data for the inquiry notification email.
type InquiryEmailData struct {
	Inquiry
	SiteName string
}

// DispatchReceipt is returned once an inquiry has been handed to the mail provider.
// swagger:model DispatchReceipt
type DispatchReceipt struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
}

// InquiryService relays contact-form submissions to the venue inbox.
type InquiryService interface {
	SendInquiry(ctx context.Context, inquiry Inquiry) (*DispatchReceipt, error)
}
