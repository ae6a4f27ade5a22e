package helpers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"portalevents/internal/domain"
)

// Multipart limits for image uploads.
const (
	DefaultMaxFileBytes int64 = 5 << 20
	multipartMemory     int64 = 8 << 20
)

// ErrNoFiles is returned by ReadImageFiles when the form carries no file under the field.
var ErrNoFiles = errors.New("no files provided")

// ParseImageForm parses a multipart request whose total size is capped at maxFiles*maxFileBytes plus form overhead.
func ParseImageForm(w http.ResponseWriter, r *http.Request, maxFiles int, maxFileBytes int64) error {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxFiles)*maxFileBytes+(1<<20))
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// ReadImageFiles reads every file under field, in submission order.
// It rejects more than maxFiles files, files larger than maxFileBytes, and non-image content.
func ReadImageFiles(r *http.Request, field string, maxFiles int, maxFileBytes int64) ([]domain.ImageFile, error) {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	if r.MultipartForm == nil {
		return nil, ErrNoFiles
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}
	if len(headers) > maxFiles {
		return nil, fmt.Errorf("at most %d files are allowed", maxFiles)
	}
	files := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readImageFile(fh, maxFileBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readImageFile(fh *multipart.FileHeader, maxFileBytes int64) (domain.ImageFile, error) {
	if fh.Size > maxFileBytes {
		return domain.ImageFile{}, fmt.Errorf("%s exceeds the %d MB limit", fh.Filename, maxFileBytes>>20)
	}
	src, err := fh.Open()
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxFileBytes+1))
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	if int64(len(data)) > maxFileBytes {
		return domain.ImageFile{}, fmt.Errorf("%s exceeds the %d MB limit", fh.Filename, maxFileBytes>>20)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return domain.ImageFile{}, fmt.Errorf("%s is not an image", fh.Filename)
	}
	return domain.ImageFile{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
