// Package demo holds the repositories used when no live backend is configured.
package demo

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"portalevents/internal/domain"
)

//go:embed demo_events.yaml
var datasetYAML []byte

type eventRecord struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category"`
	Images      []string  `yaml:"images"`
	CreatedAt   time.Time `yaml:"created_at"`
}

func (r eventRecord) toEvent() *domain.Event {
	images := make([]string, len(r.Images))
	copy(images, r.Images)
	return &domain.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Images:      images,
		CreatedAt:   r.CreatedAt,
	}
}

// LoadDataset parses the embedded showcase dataset.
func LoadDataset() ([]*domain.Event, error) {
	var records []eventRecord
	if err := yaml.Unmarshal(datasetYAML, &records); err != nil {
		return nil, fmt.Errorf("parse demo dataset: %w", err)
	}
	events := make([]*domain.Event, 0, len(records))
	for _, r := range records {
		if !domain.Category(r.Category).Valid() {
			return nil, fmt.Errorf("demo event %s: unknown category %q", r.ID, r.Category)
		}
		events = append(events, r.toEvent())
	}
	return events, nil
}

// eventRepository serves the fixed dataset plus events created since startup.
// Created events live in a process-local overlay; the dataset itself is never mutated.
type eventRepository struct {
	dataset []*domain.Event

	mu      sync.RWMutex
	overlay []*domain.Event // newest first
	now     func() time.Time
}

// NewEventRepository returns the demo EventRepository over dataset.
func NewEventRepository(dataset []*domain.Event) domain.EventRepository {
	return &eventRepository{dataset: dataset, now: time.Now}
}

func (r *eventRepository) Create(_ context.Context, e *domain.Event) error {
	e.ID = "demo-id-" + uuid.NewString()
	e.CreatedAt = r.now().UTC()
	stored := *e
	stored.Images = append([]string(nil), e.Images...)

	r.mu.Lock()
	r.overlay = append([]*domain.Event{&stored}, r.overlay...)
	r.mu.Unlock()
	return nil
}

func (r *eventRepository) ListByCategory(_ context.Context, category domain.Category) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	r.mu.RLock()
	for _, e := range r.overlay {
		if e.Category == category {
			events = append(events, clone(e))
		}
	}
	r.mu.RUnlock()
	for _, e := range r.dataset {
		if e.Category == category {
			events = append(events, clone(e))
		}
	}
	return events, nil
}

// Delete always succeeds. Only overlay events are actually removed.
func (r *eventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.overlay {
		if e.ID == id {
			r.overlay = append(r.overlay[:i:i], r.overlay[i+1:]...)
			break
		}
	}
	return nil
}

func clone(e *domain.Event) *domain.Event {
	c := *e
	c.Images = append([]string(nil), e.Images...)
	return &c
}
