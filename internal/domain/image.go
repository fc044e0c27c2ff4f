package domain

// RenderedImage - декодированный пиксельный буфер в порядке RGBA.
// Premultiplied отражает, домножены ли цветовые каналы на альфу
type RenderedImage struct {
	Pix           []uint8
	Width         int
	Height        int
	Premultiplied bool
}

// At возвращает смещение пикселя (x, y) в буфере
func (img *RenderedImage) At(x, y int) int {
	return (y*img.Width + x) * 4
}

// EncodeProfile - фиксированный профиль кодирования PNG
type EncodeProfile struct {
	// Квантование в палитру 256 цветов (png8)
	PaletteOptimized bool
	// Уровень сжатия zlib: 0 - по умолчанию, -1..-3 - см. image/png
	CompressionLevel int
}

// OverlayEncodeProfile - профиль кодирования композита: палитра
// 256 цветов, максимальное сжатие (png.BestCompression)
var OverlayEncodeProfile = EncodeProfile{
	PaletteOptimized: true,
	CompressionLevel: -3,
}
