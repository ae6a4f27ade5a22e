package domain

import (
	"context"
	"strings"
	"time"
)

// MaxEventImages is the largest image set an event may carry.
const MaxEventImages = 5

// Event is a published record of a past engagement shown on the category pages.
// Events are created or deleted, never updated in place.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEvent returns a new Event from a validated draft. ID and CreatedAt are set by the repository on create.
func NewEvent(d EventDraft) *Event {
	images := make([]string, len(d.Images))
	copy(images, d.Images)
	return &Event{
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Images:      images,
	}
}

// Cover returns the representative image (index 0), or "" if the event has none.
func (e *Event) Cover() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0]
}

// EventDraft holds the operator-supplied fields of an event before it is persisted.
type EventDraft struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    Category `json:"category" validate:"required,category"`
	Images      []string `json:"images" validate:"min=1,max=5,dive,required"`
}

// NewEventDraft trims the text fields and returns the draft.
func NewEventDraft(title, description string, category Category, images []string) EventDraft {
	return EventDraft{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    Category(strings.TrimSpace(string(category))),
		Images:      images,
	}
}

// Validate checks every field, images included.
func (d EventDraft) Validate() error {
	return validateStruct(d)
}

// ValidateFields checks title, description and category, and that imageCount is within 1..MaxEventImages.
// It is used before the images have been uploaded.
func (d EventDraft) ValidateFields(imageCount int) error {
	err := validateStruct(d, "Images")
	var fields []string
	if ve, ok := err.(*ValidationError); ok {
		fields = ve.Fields
	} else if err != nil {
		return err
	}
	if imageCount < 1 || imageCount > MaxEventImages {
		fields = append(fields, "images must contain between 1 and 5 files")
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// EventRepository defines the interface for event storage.
// Create sets ID and CreatedAt on the event. ListByCategory returns newest first.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	ListByCategory(ctx context.Context, category Category) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for publishing, listing and deleting events.
type EventService interface {
	CreateEvent(ctx context.Context, draft EventDraft) (*Event, error)
	PublishEvent(ctx context.Context, draft EventDraft, files []ImageFile) (*Event, error)
	ListEventsByCategory(ctx context.Context, category Category) ([]*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListCategories() []CategoryInfo
}
