package repository

import "github.com/snapshot-microservice/internal/domain"

// ImageCodec - декодирование, альфа-арифметика и кодирование растров
type ImageCodec interface {
	Decode(data []byte) (*domain.RenderedImage, error)
	Premultiply(img *domain.RenderedImage)
	Demultiply(img *domain.RenderedImage)

	// Composite накладывает overlay поверх base ("over"-композитинг).
	// Оба изображения обязаны быть premultiplied и одного размера
	Composite(base, overlay *domain.RenderedImage) (*domain.RenderedImage, error)

	Encode(img *domain.RenderedImage, profile domain.EncodeProfile) ([]byte, error)
}
