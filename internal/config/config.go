// Package config handles the configuration directory and client settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// OAuthClientFile is the Google OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored Google OAuth token filename.
	TokenFile = "token.json"

	// DebugLogFile receives logs while the interactive board owns the terminal.
	DebugLogFile = "debug.log"

	// DefaultAPIURL is the remote task collection endpoint.
	DefaultAPIURL = "https://task-backend-fpuna.herokuapp.com/tasks"

	// DefaultTimeout bounds a single REST round trip.
	DefaultTimeout = 30 * time.Second

	// DefaultBannerDelay is how long an error banner stays visible.
	DefaultBannerDelay = 5 * time.Second
)

// Backend names.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Environment variables consulted when the matching flag is not given.
const (
	EnvAPIURL  = "TASKBOARD_API_URL"
	EnvToken   = "TASKBOARD_TOKEN"
	EnvBackend = "TASKBOARD_BACKEND"
	EnvTimeout = "TASKBOARD_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Interactive is set when a full-screen command owns the terminal.
	Interactive bool

	// Backend selects the store implementation.
	Backend string

	// APIURL is the REST collection endpoint.
	APIURL string

	// Token is an optional bearer token for the REST backend.
	Token string

	// Timeout bounds each REST round trip.
	Timeout time.Duration

	// BannerDelay is how long an error banner stays up.
	BannerDelay time.Duration
}

// New creates a Config with the default or specified config directory and
// settings taken from the environment.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:         dir,
		Backend:     BackendREST,
		APIURL:      DefaultAPIURL,
		Timeout:     DefaultTimeout,
		BannerDelay: DefaultBannerDelay,
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		c.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		c.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %s", EnvTimeout, v)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks the settings that flags and environment can get wrong.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if strings.TrimSpace(c.APIURL) == "" {
			return fmt.Errorf("api url required")
		}
	case BackendGoogleTasks:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// DebugLogPath returns the path of the interactive board's log file.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
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
