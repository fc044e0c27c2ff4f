package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/infrastructure/imaging"
)

// solidImage собирает изображение w x h, залитое одним RGBA-пикселем
func solidImage(w, h int, r, g, b, a uint8) *domain.RenderedImage {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return &domain.RenderedImage{Pix: pix, Width: w, Height: h}
}

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCodec_Decode(t *testing.T) {
	codec := imaging.NewCodec()

	t.Run("png", func(t *testing.T) {
		img, err := codec.Decode(pngBytes(t, 4, 3, color.NRGBA{R: 200, G: 100, B: 50, A: 255}))
		require.NoError(t, err)
		assert.Equal(t, 4, img.Width)
		assert.Equal(t, 3, img.Height)
		assert.False(t, img.Premultiplied)
		assert.Equal(t, uint8(200), img.Pix[0])
		assert.Equal(t, uint8(255), img.Pix[3])
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode([]byte("not an image"))
		assert.Error(t, err)
	})
}

func TestCodec_PremultiplyDemultiply(t *testing.T) {
	codec := imaging.NewCodec()

	t.Run("premultiply scales channels by alpha", func(t *testing.T) {
		img := solidImage(1, 1, 200, 100, 50, 128)
		codec.Premultiply(img)
		require.True(t, img.Premultiplied)
		assert.Equal(t, uint8(100), img.Pix[0])
		assert.Equal(t, uint8(50), img.Pix[1])
		assert.Equal(t, uint8(25), img.Pix[2])
		assert.Equal(t, uint8(128), img.Pix[3])
	})

	t.Run("round trip restores channels within rounding", func(t *testing.T) {
		img := solidImage(2, 2, 200, 100, 50, 128)
		codec.Premultiply(img)
		codec.Demultiply(img)
		require.False(t, img.Premultiplied)
		assert.InDelta(t, 200, int(img.Pix[0]), 2)
		assert.InDelta(t, 100, int(img.Pix[1]), 2)
		assert.InDelta(t, 50, int(img.Pix[2]), 2)
		assert.Equal(t, uint8(128), img.Pix[3])
	})

	t.Run("zero alpha zeroes color channels", func(t *testing.T) {
		img := solidImage(1, 1, 200, 100, 50, 0)
		codec.Premultiply(img)
		codec.Demultiply(img)
		assert.Equal(t, uint8(0), img.Pix[0])
		assert.Equal(t, uint8(0), img.Pix[1])
		assert.Equal(t, uint8(0), img.Pix[2])
	})

	t.Run("idempotent", func(t *testing.T) {
		img := solidImage(1, 1, 200, 100, 50, 128)
		codec.Premultiply(img)
		codec.Premultiply(img)
		assert.Equal(t, uint8(100), img.Pix[0])
	})
}

func TestCodec_Composite(t *testing.T) {
	codec := imaging.NewCodec()

	t.Run("fully transparent overlay reproduces base", func(t *testing.T) {
		base := solidImage(2, 2, 10, 120, 240, 255)
		overlay := solidImage(2, 2, 0, 0, 0, 0)
		codec.Premultiply(base)
		codec.Premultiply(overlay)

		out, err := codec.Composite(base, overlay)
		require.NoError(t, err)
		assert.Equal(t, base.Pix, out.Pix)
	})

	t.Run("opaque overlay replaces base", func(t *testing.T) {
		base := solidImage(2, 2, 10, 120, 240, 255)
		overlay := solidImage(2, 2, 30, 40, 50, 255)
		codec.Premultiply(base)
		codec.Premultiply(overlay)

		out, err := codec.Composite(base, overlay)
		require.NoError(t, err)
		assert.Equal(t, overlay.Pix, out.Pix)
	})

	t.Run("half transparent overlay blends", func(t *testing.T) {
		base := solidImage(1, 1, 200, 0, 0, 255)
		overlay := solidImage(1, 1, 0, 200, 0, 128)
		codec.Premultiply(base)
		codec.Premultiply(overlay)

		out, err := codec.Composite(base, overlay)
		require.NoError(t, err)
		// R: 0 + 200*(255-128)/255, G: вклад только от оверлея
		assert.InDelta(t, 100, int(out.Pix[0]), 2)
		assert.InDelta(t, 100, int(out.Pix[1]), 2)
		assert.Equal(t, uint8(255), out.Pix[3])
	})

	t.Run("size mismatch", func(t *testing.T) {
		base := solidImage(2, 2, 0, 0, 0, 255)
		overlay := solidImage(3, 2, 0, 0, 0, 255)
		codec.Premultiply(base)
		codec.Premultiply(overlay)
		_, err := codec.Composite(base, overlay)
		assert.Error(t, err)
	})

	t.Run("requires premultiplied inputs", func(t *testing.T) {
		base := solidImage(2, 2, 0, 0, 0, 255)
		overlay := solidImage(2, 2, 0, 0, 0, 255)
		_, err := codec.Composite(base, overlay)
		assert.Error(t, err)
	})
}

func TestCodec_Encode(t *testing.T) {
	codec := imaging.NewCodec()

	t.Run("lossless round trip", func(t *testing.T) {
		img := solidImage(4, 4, 200, 100, 50, 255)
		data, err := codec.Encode(img, imaging.LosslessProfile)
		require.NoError(t, err)

		decoded, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, uint8(200), decoded.Pix[0])
		assert.Equal(t, uint8(100), decoded.Pix[1])
		assert.Equal(t, uint8(50), decoded.Pix[2])
	})

	t.Run("palette profile emits paletted png", func(t *testing.T) {
		img := solidImage(4, 4, 200, 100, 50, 255)
		data, err := codec.Encode(img, domain.OverlayEncodeProfile)
		require.NoError(t, err)

		decoded, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		_, ok := decoded.(*image.Paletted)
		assert.True(t, ok, "expected paletted png, got %T", decoded)
	})

	t.Run("premultiplied input is demultiplied before encode", func(t *testing.T) {
		img := solidImage(2, 2, 200, 100, 50, 128)
		codec.Premultiply(img)

		data, err := codec.Encode(img, imaging.LosslessProfile)
		require.NoError(t, err)

		decoded, err := codec.Decode(data)
		require.NoError(t, err)
		assert.InDelta(t, 200, int(decoded.Pix[0]), 2)
		assert.Equal(t, uint8(128), decoded.Pix[3])
	})
}
