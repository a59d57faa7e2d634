package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "CoursePortal", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "jsonfile", cfg.Storage.Driver)
	assert.Equal(t, "course_catalog.json", cfg.Catalog.File)
	assert.Empty(t, cfg.Catalog.DefaultPrerequisites)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Storage: StorageConfig{Driver: "jsonfile"},
			Catalog: CatalogConfig{File: "course_catalog.json"},
			Telemetry: TelemetryConfig{
				SampleRate: 1.0,
			},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateConfig(base()))
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "cassandra"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("jsonfile without path", func(t *testing.T) {
		cfg := base()
		cfg.Catalog.File = ""
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("postgres without host", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Driver = "postgres"
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("sample rate out of range", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SampleRate = 1.5
		assert.Error(t, validateConfig(cfg))
	})
}
