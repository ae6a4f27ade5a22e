package imageproc

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/disintegration/imaging"

	"portalevents/internal/domain"
)

// Canonical output of the ingestion pipeline: 3:2 landscape, JPEG.
const (
	DefaultWidth   = 1200
	DefaultHeight  = 800
	DefaultQuality = 80
)

type fillTransformer struct {
	width   int
	height  int
	quality int
}

// NewFillTransformer returns an ImageTransformer that center-crops to width x height and re-encodes as JPEG.
func NewFillTransformer(width, height, quality int) domain.ImageTransformer {
	return &fillTransformer{width: width, height: height, quality: quality}
}

// NewDefaultTransformer returns the 1200x800 / quality 80 transformer.
func NewDefaultTransformer() domain.ImageTransformer {
	return NewFillTransformer(DefaultWidth, DefaultHeight, DefaultQuality)
}

func (t *fillTransformer) Transform(file domain.ImageFile) (domain.ImageFile, error) {
	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("decode %q: %w", file.Name, err)
	}
	filled := imaging.Fill(img, t.width, t.height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, filled, imaging.JPEG, imaging.JPEGQuality(t.quality)); err != nil {
		return domain.ImageFile{}, fmt.Errorf("encode %q: %w", file.Name, err)
	}
	return domain.ImageFile{
		Name:        jpegName(file.Name),
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
	}, nil
}

func jpegName(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return base + ".jpg"
}
