package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/goals/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages the configuration file.
type Manager struct {
	path string // Config file path
}

// NewManager creates a new Manager for the default config file.
func NewManager() *Manager {
	return &Manager{path: DefaultConfigPath()}
}

// NewManagerWithPath creates a new Manager with a custom config file path.
// This is useful for testing and for the --config flag.
func NewManagerWithPath(path string) *Manager {
	return &Manager{path: path}
}

// ConfigInfo returns information about the config file.
func (m *Manager) ConfigInfo() domain.ConfigInfo {
	if m.path == "" {
		return domain.ConfigInfo{}
	}
	content, err := os.ReadFile(m.path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   m.path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    m.path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig creates the config file with the default template.
func (m *Manager) InitConfig(cfg *domain.Config) error {
	if m.path == "" {
		return errors.New("config directory not available")
	}

	// Check if file already exists
	if _, err := os.Stat(m.path); err == nil {
		return domain.ErrConfigExists
	}

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}

	content := domain.RenderConfigTemplate(cfg)
	return os.WriteFile(m.path, []byte(content), 0o600)
}
