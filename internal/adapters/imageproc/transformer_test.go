package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalevents/internal/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFillTransformer_Transform(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"wide source", 300, 100},
		{"tall source", 90, 240},
	}
	tr := NewFillTransformer(120, 80, 70)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tr.Transform(domain.ImageFile{Name: "photos/cover.png", ContentType: "image/png", Data: pngBytes(t, tt.w, tt.h)})
			require.NoError(t, err)
			assert.Equal(t, "cover.jpg", out.Name)
			assert.Equal(t, "image/jpeg", out.ContentType)

			img, format, err := image.Decode(bytes.NewReader(out.Data))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, 120, img.Bounds().Dx())
			assert.Equal(t, 80, img.Bounds().Dy())
		})
	}
}

func TestFillTransformer_Transform_notAnImage(t *testing.T) {
	_, err := NewDefaultTransformer().Transform(domain.ImageFile{Name: "notes.txt", Data: []byte("hello")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.txt")
}

func TestJPEGName(t *testing.T) {
	assert.Equal(t, "a.jpg", jpegName("a.webp"))
	assert.Equal(t, "image.jpg", jpegName(""))
}
