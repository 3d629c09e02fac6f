package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/goals/internal/domain"
)

func TestManager_ConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)
		configContent := "[log]\nlevel = \"debug\""
		require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

		info := NewManagerWithPath(path).ConfigInfo()

		assert.Equal(t, path, info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)

		info := NewManagerWithPath(path).ConfigInfo()

		assert.Equal(t, path, info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})

	t.Run("returns empty info without a path", func(t *testing.T) {
		info := NewManagerWithPath("").ConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitConfig(t *testing.T) {
	t.Run("creates config and parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "goals", domain.ConfigFileName)
		manager := NewManagerWithPath(path)

		err := manager.InitConfig(domain.NewDefaultConfig())
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "[store]")
		assert.Contains(t, string(content), `type = "sqlite"`)

		var raw map[string]any
		require.NoError(t, toml.Unmarshal(content, &raw))
	})

	t.Run("created file loads back without warnings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)
		require.NoError(t, NewManagerWithPath(path).InitConfig(domain.NewDefaultConfig()))

		cfg, err := NewLoaderWithPaths(path, t.TempDir()).Load()

		require.NoError(t, err)
		assert.Empty(t, cfg.Warnings)
		assert.Equal(t, domain.StoreSQLite, cfg.Store.Type)
	})

	t.Run("returns error if file already exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), domain.ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

		err := NewManagerWithPath(path).InitConfig(domain.NewDefaultConfig())

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("returns error without a path", func(t *testing.T) {
		err := NewManagerWithPath("").InitConfig(domain.NewDefaultConfig())

		assert.Error(t, err)
	})
}
