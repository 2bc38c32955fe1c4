// Package config loads secretariat settings from an optional YAML file,
// SECRETARIAT_ environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SECRETARIAT"

	DefaultAPIURL  = "https://api.github.com/"
	DefaultNote    = "secretariat, the command-line tool for initializing Git repos"
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the client-side request budget per second.
	DefaultRateLimit = 5
)

// DefaultScopes are requested for every new token.
//
//nolint:gochecknoglobals // Read-only default list
var DefaultScopes = []string{"user", "public_repo", "repo", "repo:status"}

// Config is the merged configuration.
type Config struct {
	GitHub    GitHubConfig    `mapstructure:"github"`
	Store     StoreConfig     `mapstructure:"store"`
	Git       GitConfig       `mapstructure:"git"`
	Gitignore GitignoreConfig `mapstructure:"gitignore"`
	Log       LogConfig       `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// GitHubConfig controls token exchange and repository creation.
type GitHubConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Scopes  []string      `mapstructure:"scopes"`
	Note    string        `mapstructure:"note"`
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit caps API requests per second; the burst matches it.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// StoreConfig locates the credential store.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// GitConfig holds local repository settings.
type GitConfig struct {
	// SSHKeyPath overrides agent and default key lookup
	SSHKeyPath  string `mapstructure:"ssh_key_path"`
	AuthorName  string `mapstructure:"author_name"`
	AuthorEmail string `mapstructure:"author_email"`
}

// GitignoreConfig holds the entries pre-selected in the ignore prompt.
type GitignoreConfig struct {
	Defaults []string `mapstructure:"defaults"`
}

// LogConfig selects the log level and handler format (text or json).
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration with this precedence, highest first:
// environment, config file, defaults. An explicit configPath must exist;
// otherwise a missing file in searchDir is not an error. storePath is the
// default credential store location.
func Load(configPath, searchDir, storePath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if searchDir != "" {
			v.AddConfigPath(searchDir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, storePath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

func setDefaults(v *viper.Viper, storePath string) {
	v.SetDefault("github.api_url", DefaultAPIURL)
	v.SetDefault("github.scopes", DefaultScopes)
	v.SetDefault("github.note", DefaultNote)
	v.SetDefault("github.timeout", DefaultTimeout)
	v.SetDefault("github.rate_limit", DefaultRateLimit)

	v.SetDefault("store.path", storePath)

	v.SetDefault("git.ssh_key_path", "")
	v.SetDefault("git.author_name", "")
	v.SetDefault("git.author_email", "")

	v.SetDefault("gitignore.defaults", []string{"node_modules"})

	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "text")
}

// Validate checks the settings the run depends on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.GitHub.APIURL)
	if err != nil {
		return fmt.Errorf("github.api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("github.api_url: %q is not an absolute http(s) URL", c.GitHub.APIURL)
	}

	if len(c.GitHub.Scopes) == 0 {
		return errors.New("github.scopes: at least one scope is required")
	}

	if c.GitHub.Timeout <= 0 {
		return fmt.Errorf("github.timeout: must be positive, got %s", c.GitHub.Timeout)
	}

	if c.GitHub.RateLimit <= 0 {
		return fmt.Errorf("github.rate_limit: must be positive, got %g", c.GitHub.RateLimit)
	}

	if c.Store.Path == "" {
		return errors.New("store.path: must not be empty")
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: %q is not one of text, json", c.Log.Format)
	}

	return nil
}
