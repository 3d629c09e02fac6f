// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/goals/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	path    string // Config file path (e.g., ~/.config/goals/config.toml)
	dataDir string // Directory default file paths are resolved against
}

// NewLoaderWithPaths creates a new Loader with a custom config file and data directory.
// This is useful for testing and for the --config flag.
func NewLoaderWithPaths(path, dataDir string) *Loader {
	return &Loader{
		path:    path,
		dataDir: dataDir,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/goals/config.toml (or ~/.config/goals/config.toml).
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.ConfigPath(configHome)
}

// DefaultDataDir returns $XDG_DATA_HOME/goals (or ~/.local/share/goals).
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// Load returns the configuration from the file merged over defaults.
// A missing file is not an error. File paths left empty are resolved
// against the data directory.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	if l.path != "" {
		file, err := l.loadFile(l.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", l.path, err)
		}
		if file != nil {
			base = mergeConfigs(base, file)
		}
	}

	l.resolvePaths(base)

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// resolvePaths fills in default file locations and expands "~/".
func (l *Loader) resolvePaths(cfg *domain.Config) {
	if cfg.Store.Path == "" && l.dataDir != "" {
		if cfg.Store.Type == domain.StoreJSON {
			cfg.Store.Path = domain.JSONPath(l.dataDir)
		} else {
			cfg.Store.Path = domain.DBPath(l.dataDir)
		}
	}
	if cfg.Log.File == "" && l.dataDir != "" {
		cfg.Log.File = domain.LogPath(l.dataDir)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Store.Repo = expandHome(cfg.Store.Repo)
	cfg.Log.File = expandHome(cfg.Log.File)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "store":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "type":
						if s, ok := v.(string); ok {
							res.Store.Type = s
						}
					case "path":
						if s, ok := v.(string); ok {
							res.Store.Path = s
						}
					case "repo":
						if s, ok := v.(string); ok {
							res.Store.Repo = s
						}
					case "namespace":
						if s, ok := v.(string); ok {
							res.Store.Namespace = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							res.Log.Level = s
						}
					case "file":
						if s, ok := v.(string); ok {
							res.Log.File = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Type != "" {
		result.Store.Type = override.Store.Type
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.Repo != "" {
		result.Store.Repo = override.Store.Repo
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}

	return result
}
