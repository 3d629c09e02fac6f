package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Store backends.
const (
	StoreSQLite = "sqlite" // Single-file SQLite database (default)
	StoreGit    = "git"    // YAML blobs under refs in a git repository
	StoreJSON   = "json"   // Single JSON file guarded by a lock file
)

// Default configuration values.
const (
	DefaultStore     = StoreSQLite
	DefaultNamespace = "goals"
	DefaultLogLevel  = "info"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string    `toml:"-"`
	Store    StoreConfig `toml:"store"`
	Log      LogConfig   `toml:"log"`
}

// StoreConfig holds settings for the persistent store from [store] section.
type StoreConfig struct {
	Type      string `toml:"type,omitempty"`      // "sqlite" (default) or "git"
	Path      string `toml:"path,omitempty"`      // SQLite database or JSON file
	Repo      string `toml:"repo,omitempty"`      // Git repository holding the refs
	Namespace string `toml:"namespace,omitempty"` // Ref namespace (default: "goals")
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	File  string `toml:"file,omitempty"`  // Log file (default: <data dir>/logs/goals.log)
}

// Directory and file names.
const (
	AppDirName     = "goals"       // Directory name under XDG config/data homes
	ConfigFileName = "config.toml" // Config file name
	DBFileName     = "goals.db"    // SQLite database file name
	JSONFileName   = "goals.json"  // JSON store file name
	LogFileName    = "goals.log"   // Log file name
)

// ConfigDir returns the config directory for the given config home.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func ConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// ConfigPath returns the config file path for the given config home.
func ConfigPath(configHome string) string {
	return filepath.Join(ConfigDir(configHome), ConfigFileName)
}

// DataDir returns the data directory for the given data home.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// DBPath returns the default SQLite path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFileName)
}

// JSONPath returns the default JSON store path inside a data directory.
func JSONPath(dataDir string) string {
	return filepath.Join(dataDir, JSONFileName)
}

// LogPath returns the default log file path inside a data directory.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}

// NewDefaultConfig returns a Config with default values.
// Paths are left empty; they are resolved against the data directory by the caller.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Type:      DefaultStore,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreSQLite, StoreJSON:
		return nil
	case StoreGit:
		if c.Store.Repo == "" {
			return fmt.Errorf("store.repo is required for the git store: %w", ErrUnknownStore)
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", c.Store.Type, ErrUnknownStore)
	}
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Store     string
	Namespace string
	LogLevel  string
}

// RenderConfigTemplate renders the commented config template from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Store:     cfg.Store.Type,
		Namespace: cfg.Store.Namespace,
		LogLevel:  cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}
