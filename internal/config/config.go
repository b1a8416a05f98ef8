// Package config handles XDG directories, the config file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultBackend is the storage backend used when none is configured.
	DefaultBackend = "file"

	// DefaultExportList is the Google Tasks list export writes to.
	DefaultExportList = "taskpad"
)

// Environment variables that override the config file.
const (
	EnvBackend = "TASKPAD_BACKEND"
	EnvDataDir = "TASKPAD_DATA_DIR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Backend names the storage backend: file, sqlite, bolt or memory.
	Backend string

	// DataDir is where the task collection is stored.
	DataDir string

	// DateFormat is the Go time layout used to display due dates.
	DateFormat string

	// CheckRevision refuses saves when the collection changed since load.
	CheckRevision bool

	// ExportList is the Google Tasks list name used by export.
	ExportList string

	logger *log.Logger
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	Backend       string `toml:"backend"`
	DataDir       string `toml:"data_dir"`
	DateFormat    string `toml:"date_format"`
	CheckRevision *bool  `toml:"check_revision"`
	Export        struct {
		List string `toml:"list"`
	} `toml:"export"`
}

// New creates a Config with defaults for the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskpad or $HOME/.config/taskpad.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		Backend:    DefaultBackend,
		DataDir:    DefaultDataDir(),
		DateFormat: "02/01/2006",
		ExportList: DefaultExportList,
	}, nil
}

// Load creates a Config and layers config.toml and the environment over the
// defaults. A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(cfg.ConfigPath()); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if fc.Backend != "" {
		c.Backend = fc.Backend
	}
	if fc.DataDir != "" {
		c.DataDir = expandHome(fc.DataDir)
	}
	if fc.DateFormat != "" {
		c.DateFormat = fc.DateFormat
	}
	if fc.CheckRevision != nil {
		c.CheckRevision = *fc.CheckRevision
	}
	if fc.Export.List != "" {
		c.ExportList = fc.Export.List
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = expandHome(v)
	}
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

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// RemoveOAuthClient deletes the OAuth client credentials file.
func (c *Config) RemoveOAuthClient() error {
	return os.Remove(c.OAuthClientPath())
}

// SetLogger sets the logger returned by Logger.
func (c *Config) SetLogger(l *log.Logger) {
	c.logger = l
}

// Logger returns the configured logger, or one that discards everything.
func (c *Config) Logger() *log.Logger {
	if c.logger == nil {
		return log.New(io.Discard)
	}
	return c.logger
}

// DisplayLayout returns the layout for showing dates.
func (c *Config) DisplayLayout() string {
	if c.DateFormat == "" {
		return "02/01/2006"
	}
	return c.DateFormat
}
