package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"portalevents/internal/domain"
)

// S3Config holds configuration for the S3 image store.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint for S3-compatible services (MinIO, R2). Path-style addressing is used.
	Endpoint      string
	PublicBaseURL string
	Folder        string
}

// NewS3Client builds an S3 client with static credentials.
func NewS3Client(cfg S3Config) *s3.Client {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

// s3API is the subset of the S3 client used by the store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Store struct {
	client      s3API
	cfg         S3Config
	transformer domain.ImageTransformer
	logger      *slog.Logger
	newKey      func() string
}

// NewS3Store returns an ImageStore that transforms every image and puts it under <folder>/<category>/.
func NewS3Store(client s3API, cfg S3Config, transformer domain.ImageTransformer, logger *slog.Logger) domain.ImageStore {
	return &s3Store{
		client:      client,
		cfg:         cfg,
		transformer: transformer,
		logger:      logger,
		newKey:      uuid.NewString,
	}
}

func (s *s3Store) Provider() string { return ProviderS3 }

// StoreBatch uploads files one by one. On the first failure the objects already written
// for this batch are removed and no URL is returned.
func (s *s3Store) StoreBatch(ctx context.Context, category domain.Category, files []domain.ImageFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	keys := make([]string, 0, len(files))
	for _, f := range files {
		out, err := s.transformer.Transform(f)
		if err != nil {
			s.rollback(ctx, keys)
			return nil, fmt.Errorf("%w: %w", domain.ErrUpload, err)
		}
		key := path.Join(s.cfg.Folder, string(category), s.newKey()+path.Ext(out.Name))
		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(s.cfg.Bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(out.Data),
			ContentType:  aws.String(out.ContentType),
			CacheControl: aws.String("public, max-age=31536000, immutable"),
		})
		if err != nil {
			s.rollback(ctx, keys)
			return nil, fmt.Errorf("%w: put %s: %w", domain.ErrUpload, f.Name, err)
		}
		keys = append(keys, key)
		urls = append(urls, s.publicURL(key))
	}
	return urls, nil
}

func (s *s3Store) rollback(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to remove object of failed batch", "key", key, "err", err)
		}
	}
}

func (s *s3Store) publicURL(key string) string {
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	case s.cfg.Endpoint != "":
		return strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}
