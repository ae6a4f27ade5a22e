package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portalevents/internal/domain"
)

type imageService struct {
	store          domain.ImageStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewImageService returns an ImageService that stores every batch through store.
func NewImageService(store domain.ImageStore, logger *slog.Logger, timeout time.Duration) domain.ImageService {
	return &imageService{store: store, logger: logger, contextTimeout: timeout}
}

// UploadImages stores files as one batch and returns their URLs in submission order.
// An empty batch returns an empty slice without calling the store.
func (s *imageService) UploadImages(ctx context.Context, files []domain.ImageFile, category domain.Category) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	urls, err := s.store.StoreBatch(ctx, category, files)
	if err != nil {
		if errors.Is(err, domain.ErrUpload) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}
	if len(urls) != len(files) {
		return nil, fmt.Errorf("%w: store returned %d urls for %d files", domain.ErrUpload, len(urls), len(files))
	}
	s.logger.InfoContext(ctx, "images stored", "provider", s.store.Provider(), "category", category, "count", len(urls))
	return urls, nil
}
