package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/testutil"
	"github.com/runoshun/goals/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		cfg := domain.NewDefaultConfig()

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Config: cfg})

		require.NoError(t, err)
		assert.Equal(t, "/home/test/.config/goals/config.toml", out.Path)
		assert.True(t, manager.InitCalled)
		assert.Same(t, cfg, manager.LastConfig)
	})

	t.Run("uses defaults when no config given", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		uc := usecase.NewInitConfig(manager)
		_, err := uc.Execute(context.Background(), usecase.InitConfigInput{})

		require.NoError(t, err)
		require.NotNil(t, manager.LastConfig)
		assert.Equal(t, domain.StoreSQLite, manager.LastConfig.Store.Type)
	})

	t.Run("returns error when config already exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.Info.Exists = true
		manager.InitErr = domain.ErrConfigExists

		uc := usecase.NewInitConfig(manager)
		_, err := uc.Execute(context.Background(), usecase.InitConfigInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
