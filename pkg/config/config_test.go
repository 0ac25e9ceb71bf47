package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/hashdiff/pkg/models"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sha256", cfg.Compare.Algorithm)
	assert.Equal(t, 5, cfg.Performance.MaxWorkers)
	assert.Equal(t, 65536, cfg.Performance.BufferSize)
	assert.Equal(t, "human", cfg.Output.Format)
	assert.True(t, cfg.Output.Progress)
	assert.False(t, cfg.Logging.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"BadAlgorithm", func(c *Config) { c.Compare.Algorithm = "crc32" }, "compare.algorithm"},
		{"ZeroWorkers", func(c *Config) { c.Performance.MaxWorkers = 0 }, "performance.max_workers"},
		{"TinyBuffer", func(c *Config) { c.Performance.BufferSize = 512 }, "performance.buffer_size"},
		{"BadOutputFormat", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "csv" }, "logging.format"},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		cfg := Default()
		cfg.Compare.Algorithm = "md5"
		cfg.Performance.MaxWorkers = 12
		cfg.Exclude = []string{"*.tmp", ".git/"}

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, SaveToFile(cfg, path))

		loaded, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "compare:\n  algorithm: sha1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		loaded, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "sha1", loaded.Compare.Algorithm)
		assert.Equal(t, 5, loaded.Performance.MaxWorkers)
		assert.Equal(t, "human", loaded.Output.Format)
	})

	t.Run("InvalidContentRejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "compare:\n  algorithm: whirlpool\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := LoadFromFile(path)
		require.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestSaveToFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	require.NoError(t, SaveToFile(Default(), path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveToFileRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"

	err := SaveToFile(cfg, filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
}
