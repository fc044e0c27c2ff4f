package domain

// SourceDescriptor - описание настроенного источника карт.
// Загружается из каталога при старте и далее неизменяем
type SourceDescriptor struct {
	ID        string   `mapstructure:"id" validate:"required"`
	Static    bool     `mapstructure:"static"`
	Formats   []string `mapstructure:"formats" validate:"min=1,dive,oneof=png jpeg"`
	MaxWidth  int      `mapstructure:"maxwidth" validate:"gt=0"`
	MaxHeight int      `mapstructure:"maxheight" validate:"gt=0"`
	MinZoom   int      `mapstructure:"minzoom" validate:"gte=0"`
	MaxZoom   int      `mapstructure:"maxzoom" validate:"gtefield=MinZoom"`

	// URI тайлового бэкенда, которым рендерится этот источник
	TileURI string `mapstructure:"tile_uri" validate:"required"`
}

// FormatAllowed проверяет, входит ли формат в набор разрешенных
func (s *SourceDescriptor) FormatAllowed(format string) bool {
	for _, f := range s.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ZoomInRange проверяет зум по допустимому диапазону источника
func (s *SourceDescriptor) ZoomInRange(zoom int) bool {
	return zoom >= s.MinZoom && zoom <= s.MaxZoom
}

// SourceRegistry - реестр источников, только для чтения после старта
type SourceRegistry struct {
	sources map[string]*SourceDescriptor
}

// NewSourceRegistry создает реестр из списка дескрипторов
func NewSourceRegistry(sources []SourceDescriptor) *SourceRegistry {
	m := make(map[string]*SourceDescriptor, len(sources))
	for i := range sources {
		m[sources[i].ID] = &sources[i]
	}
	return &SourceRegistry{sources: m}
}

// Get возвращает дескриптор источника по идентификатору
func (r *SourceRegistry) Get(id string) (*SourceDescriptor, bool) {
	s, ok := r.sources[id]
	return s, ok
}

// Len возвращает количество настроенных источников
func (r *SourceRegistry) Len() int {
	return len(r.sources)
}
