package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/png"

	_ "image/jpeg"

	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/domain/repository"
)

// LosslessProfile - профиль без квантования, для точного вывода
var LosslessProfile = domain.EncodeProfile{
	PaletteOptimized: false,
	CompressionLevel: int(png.DefaultCompression),
}

type codec struct{}

// NewCodec создает кодек растров поверх стандартных image/png и image/jpeg
func NewCodec() repository.ImageCodec {
	return &codec{}
}

// Decode распаковывает png/jpeg в RGBA-буфер без premultiplication
func (c *codec) Decode(data []byte) (*domain.RenderedImage, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, bounds.Min, draw.Src)

	return &domain.RenderedImage{
		Pix:           nrgba.Pix,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Premultiplied: false,
	}, nil
}

// Premultiply домножает цветовые каналы на альфу (in-place)
func (c *codec) Premultiply(img *domain.RenderedImage) {
	if img.Premultiplied {
		return
	}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		img.Pix[i+0] = uint8(uint32(img.Pix[i+0]) * a / 255)
		img.Pix[i+1] = uint8(uint32(img.Pix[i+1]) * a / 255)
		img.Pix[i+2] = uint8(uint32(img.Pix[i+2]) * a / 255)
	}
	img.Premultiplied = true
}

// Demultiply восстанавливает прямые цветовые каналы (in-place)
func (c *codec) Demultiply(img *domain.RenderedImage) {
	if !img.Premultiplied {
		return
	}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		if a == 0 {
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2] = 0, 0, 0
			continue
		}
		img.Pix[i+0] = clamp255(uint32(img.Pix[i+0]) * 255 / a)
		img.Pix[i+1] = clamp255(uint32(img.Pix[i+1]) * 255 / a)
		img.Pix[i+2] = clamp255(uint32(img.Pix[i+2]) * 255 / a)
	}
	img.Premultiplied = false
}

// Composite выполняет стандартный "over"-композитинг:
// out = overlay + base*(1 - overlayAlpha). Требует premultiplied входы
func (c *codec) Composite(base, overlay *domain.RenderedImage) (*domain.RenderedImage, error) {
	if base.Width != overlay.Width || base.Height != overlay.Height {
		return nil, fmt.Errorf("composite size mismatch: base %dx%d, overlay %dx%d",
			base.Width, base.Height, overlay.Width, overlay.Height)
	}
	if !base.Premultiplied || !overlay.Premultiplied {
		return nil, fmt.Errorf("composite requires premultiplied images")
	}

	out := &domain.RenderedImage{
		Pix:           make([]uint8, len(base.Pix)),
		Width:         base.Width,
		Height:        base.Height,
		Premultiplied: true,
	}

	for i := 0; i+3 < len(base.Pix); i += 4 {
		oa := uint32(overlay.Pix[i+3])
		inv := 255 - oa
		for k := 0; k < 4; k++ {
			out.Pix[i+k] = clamp255(uint32(overlay.Pix[i+k]) + uint32(base.Pix[i+k])*inv/255)
		}
	}
	return out, nil
}

// Encode кодирует изображение в PNG по заданному профилю
func (c *codec) Encode(img *domain.RenderedImage, profile domain.EncodeProfile) ([]byte, error) {
	// Кодировщику нужен не-premultiplied буфер
	if img.Premultiplied {
		c.Demultiply(img)
	}

	nrgba := &image.NRGBA{
		Pix:    img.Pix,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}

	var src image.Image = nrgba
	if profile.PaletteOptimized {
		paletted := image.NewPaletted(nrgba.Rect, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, nrgba.Rect, nrgba, image.Point{})
		src = paletted
	}

	encoder := png.Encoder{CompressionLevel: png.CompressionLevel(profile.CompressionLevel)}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp255(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
