package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/pkg/validator"
)

// LoadSources читает YAML-каталог источников карт.
// Каталог неизменяем после старта процесса
func LoadSources(path string) (*domain.SourceRegistry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read sources catalog: %w", err)
	}

	var catalog struct {
		Sources []domain.SourceDescriptor `mapstructure:"sources"`
	}
	if err := v.Unmarshal(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse sources catalog: %w", err)
	}

	if len(catalog.Sources) == 0 {
		return nil, fmt.Errorf("sources catalog %s is empty", path)
	}

	for i := range catalog.Sources {
		s := &catalog.Sources[i]
		if s.MaxWidth == 0 {
			s.MaxWidth = 1280
		}
		if s.MaxHeight == 0 {
			s.MaxHeight = 1024
		}
		if s.MaxZoom == 0 {
			s.MaxZoom = 18
		}
		if len(s.Formats) == 0 {
			s.Formats = []string{"png"}
		}
		if s.TileURI == "" {
			s.TileURI = s.ID
		}
		if err := validator.Validate(s); err != nil {
			return nil, fmt.Errorf("invalid source %q: %w", s.ID, err)
		}
	}

	return domain.NewSourceRegistry(catalog.Sources), nil
}
