package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func files(n int) []domain.ImageFile {
	out := make([]domain.ImageFile, n)
	for i := range out {
		out[i] = domain.ImageFile{Name: fmt.Sprintf("photo-%d.png", i), ContentType: "image/png", Data: []byte{byte(i)}}
	}
	return out
}

func TestPlaceholderStore_StoreBatch(t *testing.T) {
	store := NewPlaceholderStore()
	assert.Equal(t, ProviderPlaceholder, store.Provider())

	urls, err := store.StoreBatch(context.Background(), domain.CategoryWedding, files(2))
	require.NoError(t, err)
	require.Len(t, urls, 2)
	assert.Equal(t, "/placeholder.svg?height=800&query=event+image+1+wedding&width=1200", urls[0])
	assert.Equal(t, "/placeholder.svg?height=800&query=event+image+2+wedding&width=1200", urls[1])

	again, err := store.StoreBatch(context.Background(), domain.CategoryWedding, files(2))
	require.NoError(t, err)
	assert.Equal(t, urls, again)
}

type fakeS3 struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	failOn  int
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn > 0 && len(f.puts)+1 == f.failOn {
		return nil, errors.New("access denied")
	}
	f.puts = append(f.puts, aws.ToString(params.Key))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

type jpegTransformer struct{ err error }

func (j jpegTransformer) Transform(f domain.ImageFile) (domain.ImageFile, error) {
	if j.err != nil {
		return domain.ImageFile{}, j.err
	}
	return domain.ImageFile{Name: strings.TrimSuffix(f.Name, ".png") + ".jpg", ContentType: "image/jpeg", Data: f.Data}, nil
}

func newTestS3Store(client s3API, cfg S3Config, tr domain.ImageTransformer) *s3Store {
	s := NewS3Store(client, cfg, tr, testLogger).(*s3Store)
	n := 0
	s.newKey = func() string {
		n++
		return fmt.Sprintf("key-%d", n)
	}
	return s
}

func TestS3Store_StoreBatch(t *testing.T) {
	client := &fakeS3{}
	store := newTestS3Store(client, S3Config{Bucket: "events", Region: "sa-east-1", Folder: "portal-aguas"}, jpegTransformer{})
	assert.Equal(t, ProviderS3, store.Provider())

	urls, err := store.StoreBatch(context.Background(), domain.CategoryCorporate, files(2))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://events.s3.sa-east-1.amazonaws.com/portal-aguas/corporate/key-1.jpg",
		"https://events.s3.sa-east-1.amazonaws.com/portal-aguas/corporate/key-2.jpg",
	}, urls)
	assert.Equal(t, []string{"portal-aguas/corporate/key-1.jpg", "portal-aguas/corporate/key-2.jpg"}, client.puts)
	assert.Empty(t, client.deletes)
}

func TestS3Store_StoreBatch_publicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{
			name: "public base url",
			cfg:  S3Config{Bucket: "b", Region: "r", PublicBaseURL: "https://cdn.portal.com/"},
			want: "https://cdn.portal.com/birthday/key-1.jpg",
		},
		{
			name: "custom endpoint",
			cfg:  S3Config{Bucket: "b", Region: "r", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/b/birthday/key-1.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestS3Store(&fakeS3{}, tt.cfg, jpegTransformer{})
			urls, err := store.StoreBatch(context.Background(), domain.CategoryBirthday, files(1))
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, urls)
		})
	}
}

func TestS3Store_StoreBatch_rollsBackOnFailure(t *testing.T) {
	client := &fakeS3{failOn: 3}
	store := newTestS3Store(client, S3Config{Bucket: "b", Region: "r"}, jpegTransformer{})

	urls, err := store.StoreBatch(context.Background(), domain.CategoryWedding, files(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.Nil(t, urls)
	assert.Equal(t, []string{"wedding/key-1.jpg", "wedding/key-2.jpg"}, client.deletes)
}

func TestS3Store_StoreBatch_transformError(t *testing.T) {
	client := &fakeS3{}
	store := newTestS3Store(client, S3Config{Bucket: "b", Region: "r"}, jpegTransformer{err: errors.New("not an image")})

	_, err := store.StoreBatch(context.Background(), domain.CategoryWedding, files(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpload)
	assert.Empty(t, client.puts)
}

type fakeCloudinary struct {
	mu        sync.Mutex
	uploads   []uploader.UploadParams
	destroyed []string
	failOn    int
	errOn     int
}

func (f *fakeCloudinary) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := file.(io.Reader); !ok {
		return nil, errors.New("file is not a reader")
	}
	f.uploads = append(f.uploads, params)
	n := len(f.uploads)
	if n == f.errOn {
		return nil, errors.New("connection reset")
	}
	res := &uploader.UploadResult{}
	if n == f.failOn {
		res.Error.Message = "Invalid image file"
		return res, nil
	}
	res.PublicID = fmt.Sprintf("portal/img-%d", n)
	res.SecureURL = fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/img-%d.jpg", n)
	return res, nil
}

func (f *fakeCloudinary) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, params.PublicID)
	return &uploader.DestroyResult{Result: "ok"}, nil
}

func newTestCloudinaryStore(client cloudinaryAPI) domain.ImageStore {
	return NewCloudinaryStore(client, CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "portal-aguas"}, testLogger)
}

func TestCloudinaryStore_StoreBatch(t *testing.T) {
	client := &fakeCloudinary{}
	store := newTestCloudinaryStore(client)
	assert.Equal(t, ProviderCloudinary, store.Provider())

	urls, err := store.StoreBatch(context.Background(), domain.CategoryFifteenthBirthday, files(2))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://res.cloudinary.com/demo/image/upload/img-1.jpg",
		"https://res.cloudinary.com/demo/image/upload/img-2.jpg",
	}, urls)

	require.Len(t, client.uploads, 2)
	assert.Equal(t, "portal-aguas/fifteenth-birthday", client.uploads[0].Folder)
	assert.Equal(t, cloudinaryTransformation, client.uploads[0].Transformation)
	assert.Empty(t, client.destroyed)
}

func TestCloudinaryStore_StoreBatch_rollsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeCloudinary
		wantErr string
	}{
		{"api error in result", &fakeCloudinary{failOn: 2}, "Invalid image file"},
		{"transport error", &fakeCloudinary{errOn: 2}, "connection reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestCloudinaryStore(tt.client)

			urls, err := store.StoreBatch(context.Background(), domain.CategoryWedding, files(3))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpload)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "photo-1.png")
			assert.Nil(t, urls)

			assert.Len(t, tt.client.uploads, 2)
			assert.Equal(t, []string{"portal/img-1"}, tt.client.destroyed)
		})
	}
}

func TestNewCloudinaryClient(t *testing.T) {
	client, err := NewCloudinaryClient(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
