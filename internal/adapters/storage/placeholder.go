package storage

import (
	"context"
	"fmt"
	"net/url"

	"portalevents/internal/domain"
)

// Provider names.
const (
	ProviderS3          = "s3"
	ProviderCloudinary  = "cloudinary"
	ProviderPlaceholder = "placeholder"
)

type placeholderStore struct{}

// NewPlaceholderStore returns the demo-mode ImageStore. It never touches the network and
// returns one deterministic URL per file.
func NewPlaceholderStore() domain.ImageStore {
	return placeholderStore{}
}

func (placeholderStore) Provider() string { return ProviderPlaceholder }

func (placeholderStore) StoreBatch(_ context.Context, category domain.Category, files []domain.ImageFile) ([]string, error) {
	urls := make([]string, len(files))
	for i := range files {
		urls[i] = PlaceholderURL(category, i)
	}
	return urls, nil
}

// PlaceholderURL returns the placeholder image URL for the index-th (0-based) file of a category.
func PlaceholderURL(category domain.Category, index int) string {
	q := url.Values{}
	q.Set("height", "800")
	q.Set("width", "1200")
	q.Set("query", fmt.Sprintf("event image %d %s", index+1, category))
	return "/placeholder.svg?" + q.Encode()
}
