package domain

import "context"

// ImageFile is one client-selected image, fully read into memory.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageStore stores a batch of images under a category namespace.
// StoreBatch returns one public URL per file in submission order, or fails for the whole batch.
type ImageStore interface {
	StoreBatch(ctx context.Context, category Category, files []ImageFile) ([]string, error)
	Provider() string
}

// ImageTransformer applies the canonical crop and compression policy before storage.
type ImageTransformer interface {
	Transform(file ImageFile) (ImageFile, error)
}

// ImageService defines the image ingestion pipeline.
type ImageService interface {
	UploadImages(ctx context.Context, files []ImageFile, category Category) ([]string, error)
}
