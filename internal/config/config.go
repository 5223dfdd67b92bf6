// Package config handles the XDG configuration directory and the optional
// config.yaml file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskpad/internal/query"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// ConfigFile is the optional settings filename inside the config dir.
	ConfigFile = "config.yaml"

	// DataDir holds file backend slots, relative to the config dir.
	DataDir = "data"

	// DatabaseFile is the sqlite backend database, relative to the config dir.
	DatabaseFile = "taskpad.db"

	// EnvStorage overrides storage.backend.
	EnvStorage = "TASKPAD_STORAGE"

	// DefaultNotifyTimeout is how long notifications stay visible.
	DefaultNotifyTimeout = 3 * time.Second
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrInvalid marks a malformed or inconsistent configuration.
var ErrInvalid = errors.New("invalid configuration")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// In is where interactive prompts read answers from.
	In io.Reader

	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
}

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// UIConfig tunes the interactive view.
type UIConfig struct {
	NotifyTimeout time.Duration `yaml:"notify_timeout"`
	DefaultStatus string        `yaml:"default_status"`
}

// New creates a Config with defaults for the default or specified config
// directory. If configDir is empty, uses XDG_CONFIG_HOME/taskpad or
// $HOME/.config/taskpad.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir: dir,
		In:  os.Stdin,
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		UI: UIConfig{
			NotifyTimeout: DefaultNotifyTimeout,
			DefaultStatus: string(query.StatusAll),
		},
	}, nil
}

// Load creates a Config and applies config.yaml and the environment.
// A missing file leaves the defaults in place.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.readFile(); err != nil {
		return cfg, err
	}
	if backend, ok := os.LookupEnv(EnvStorage); ok && backend != "" {
		cfg.Storage.Backend = backend
	}
	return cfg, cfg.Validate()
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns where the selected backend keeps its data: a directory
// for the file backend, a database file for sqlite.
func (c *Config) DataPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(c.Dir, DatabaseFile)
	}
	return filepath.Join(c.Dir, DataDir)
}

// Status returns the configured initial status filter.
func (c *Config) Status() query.Status {
	s, err := query.ParseStatus(c.UI.DefaultStatus)
	if err != nil {
		return query.StatusAll
	}
	return s
}

// Validate checks the settings that the file or environment may have set.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = BackendFile
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown storage backend %q (want file or sqlite)", ErrInvalid, c.Storage.Backend)
	}

	if c.UI.NotifyTimeout < 0 {
		return fmt.Errorf("%w: ui.notify_timeout must not be negative", ErrInvalid)
	}
	if c.UI.NotifyTimeout == 0 {
		c.UI.NotifyTimeout = DefaultNotifyTimeout
	}

	if c.UI.DefaultStatus == "" {
		c.UI.DefaultStatus = string(query.StatusAll)
	}
	if _, err := query.ParseStatus(c.UI.DefaultStatus); err != nil {
		return fmt.Errorf("%w: ui.default_status: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) readFile() error {
	data, err := os.ReadFile(c.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path(), err)
	}

	var file struct {
		Storage StorageConfig `yaml:"storage"`
		UI      UIConfig      `yaml:"ui"`
	}
	file.Storage = c.Storage
	file.UI = c.UI
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, c.Path(), err)
	}
	c.Storage = file.Storage
	c.UI = file.UI
	return nil
}
