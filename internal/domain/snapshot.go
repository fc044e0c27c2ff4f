package domain

// Center - географический центр кадра
type Center struct {
	Lat float64
	Lon float64
}

// RenderParams - разрешенные параметры одного вызова рендера
type RenderParams struct {
	Zoom   int
	Scale  float64
	Center Center
	Width  int
	Height int
	Format string

	// Источник тайлов, против которого выполняется рендер
	Source *SourceDescriptor
}

// RenderResult - байты изображения и заголовки, отданные движком рендера
type RenderResult struct {
	Data    []byte
	Headers map[string]string
}

// Snapshot - финальный результат пайплайна: закодированное изображение
// и заголовки, взятые из рендера базовой карты
type Snapshot struct {
	Data    []byte
	Headers map[string]string
}
