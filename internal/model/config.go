package model

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variables that override config
// keys, e.g. UNSUBMGR_API_BASE_URL for api.base_url.
const EnvPrefix = "UNSUBMGR"

// DefaultAPIBaseURL is where the unsubscribe backend listens by default.
const DefaultAPIBaseURL = "http://localhost:8000"

// APIConfig holds settings for talking to the unsubscribe backend.
type APIConfig struct {
	// BaseURL is the root that every endpoint path is appended to.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// ScanBaseURL, when set, sends the scan request to a different origin
	// than BaseURL. Empty means the scan uses BaseURL.
	ScanBaseURL string `mapstructure:"scan_base_url" yaml:"scan_base_url"`

	// TokenCredential names the keyring entry holding a bearer token.
	// Empty disables authentication.
	TokenCredential string `mapstructure:"token_credential" yaml:"token_credential"`
}

// UIConfig holds interaction preferences.
type UIConfig struct {
	ConfirmUnsubscribe bool `mapstructure:"confirm_unsubscribe" yaml:"confirm_unsubscribe"`

	// ShowErrors surfaces failed scans and actions in the status bar.
	ShowErrors bool `mapstructure:"show_errors" yaml:"show_errors"`
}

// LogConfig controls where diagnostics are written.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API APIConfig `mapstructure:"api" yaml:"api"`
	UI  UIConfig  `mapstructure:"ui" yaml:"ui"`
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// ScanURL returns the base URL the scan request is sent to.
func (c APIConfig) ScanURL() string {
	if c.ScanBaseURL != "" {
		return c.ScanBaseURL
	}
	return c.BaseURL
}

// Validate checks that the configured URLs are usable.
func (c *AppConfig) Validate() error {
	if err := validateBaseURL("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if c.API.ScanBaseURL != "" {
		if err := validateBaseURL("api.scan_base_url", c.API.ScanBaseURL); err != nil {
			return err
		}
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must include scheme and host (e.g., http://localhost:8000)", key)
	}
	return nil
}

// configDir returns ~/.config/unsubmgr, or the working directory when the
// home directory cannot be determined.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "unsubmgr")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/unsubmgr/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() string {
	return filepath.Join(configDir(), "unsubmgr.log")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
		},
		UI: UIConfig{
			ConfirmUnsubscribe: false,
			ShowErrors:         true,
		},
		Log: LogConfig{
			File:  DefaultLogPath(),
			Level: "info",
		},
	}
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *AppConfig {
	return defaultAppConfig()
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with UNSUBMGR_ override file values.
// If the file does not exist, defaults (plus environment overrides) are
// returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can resolve it on Unmarshal.
	def := defaultAppConfig()
	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.scan_base_url", def.API.ScanBaseURL)
	v.SetDefault("api.token_credential", def.API.TokenCredential)
	v.SetDefault("ui.confirm_unsubscribe", def.UI.ConfirmUnsubscribe)
	v.SetDefault("ui.show_errors", def.UI.ShowErrors)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.API.ScanBaseURL = strings.TrimRight(cfg.API.ScanBaseURL, "/")

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", map[string]any{
		"base_url":         cfg.API.BaseURL,
		"scan_base_url":    cfg.API.ScanBaseURL,
		"token_credential": cfg.API.TokenCredential,
	})
	v.Set("ui", map[string]any{
		"confirm_unsubscribe": cfg.UI.ConfirmUnsubscribe,
		"show_errors":         cfg.UI.ShowErrors,
	})
	v.Set("log", map[string]any{
		"file":  cfg.Log.File,
		"level": cfg.Log.Level,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
