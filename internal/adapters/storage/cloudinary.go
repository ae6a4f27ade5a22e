package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"portalevents/internal/domain"
)

// Fill-crop to 1200x800 then let Cloudinary pick the compression level.
const cloudinaryTransformation = "c_fill,w_1200,h_800/q_auto"

// CloudinaryConfig holds configuration for the Cloudinary image store.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// NewCloudinaryClient builds the Cloudinary upload API client.
func NewCloudinaryClient(cfg CloudinaryConfig) (*uploader.API, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &cld.Upload, nil
}

// cloudinaryAPI is the subset of the Cloudinary upload API used by the store.
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type cloudinaryStore struct {
	client cloudinaryAPI
	folder string
	logger *slog.Logger
}

// NewCloudinaryStore returns an ImageStore backed by Cloudinary.
// Transformations run on Cloudinary's side, so files are sent as-is.
func NewCloudinaryStore(client cloudinaryAPI, cfg CloudinaryConfig, logger *slog.Logger) domain.ImageStore {
	return &cloudinaryStore{client: client, folder: cfg.Folder, logger: logger}
}

func (c *cloudinaryStore) Provider() string { return ProviderCloudinary }

func (c *cloudinaryStore) StoreBatch(ctx context.Context, category domain.Category, files []domain.ImageFile) ([]string, error) {
	params := uploader.UploadParams{
		Folder:         path.Join(c.folder, string(category)),
		Transformation: cloudinaryTransformation,
	}
	urls := make([]string, 0, len(files))
	publicIDs := make([]string, 0, len(files))
	for _, f := range files {
		res, err := c.client.Upload(ctx, bytes.NewReader(f.Data), params)
		if err == nil {
			err = uploadError(res)
		}
		if err != nil {
			c.rollback(ctx, publicIDs)
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrUpload, f.Name, err)
		}
		publicIDs = append(publicIDs, res.PublicID)
		urls = append(urls, res.SecureURL)
	}
	return urls, nil
}

// The SDK reports API failures in the result body rather than as an error.
func uploadError(res *uploader.UploadResult) error {
	switch {
	case res == nil:
		return errors.New("cloudinary returned no result")
	case res.Error.Message != "":
		return errors.New(res.Error.Message)
	case res.SecureURL == "":
		return errors.New("cloudinary response has no secure_url")
	}
	return nil
}

func (c *cloudinaryStore) rollback(ctx context.Context, publicIDs []string) {
	ctx = context.WithoutCancel(ctx)
	for _, id := range publicIDs {
		res, err := c.client.Destroy(ctx, uploader.DestroyParams{PublicID: id})
		if err == nil && res != nil && res.Error.Message != "" {
			err = errors.New(res.Error.Message)
		}
		if err != nil {
			c.logger.WarnContext(ctx, "failed to remove image of failed batch", "public_id", id, "err", err)
		}
	}
}
