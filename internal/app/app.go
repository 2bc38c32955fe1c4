package app

import (
	"context"
	"log/slog"

	"secretariat/internal/commands"
	"secretariat/internal/config"
	"secretariat/internal/domain"
	"secretariat/internal/ui"
)

// App contains all application dependencies.
type App struct {
	// Bootstrap is the single command secretariat runs.
	Bootstrap *commands.BootstrapCommand

	// Merged file, environment and default configuration
	Config *config.Config

	// Paths to configuration and credential files
	ConfigProvider domain.ConfigProvider

	FileSystem domain.FileSystemAdapter
	Console    *ui.Console

	// Logging
	Logger *slog.Logger

	// Settings this App was built with
	Settings *Settings
}

// Settings holds how the App is constructed.
type Settings struct {
	LogLevel *slog.Level
	Verbose  bool
	// ConfigFile overrides the default config location. It must exist.
	ConfigFile string
	// WorkDir is the directory to bootstrap. Empty means the process cwd.
	WorkDir string
}

// Option is a functional option for configuring the App.
type Option func(*Settings)

// WithLogLevel sets the logging level, overriding log.level.
func WithLogLevel(level slog.Level) Option {
	return func(s *Settings) {
		s.LogLevel = &level
	}
}

// WithVerbose enables debug logging.
func WithVerbose(verbose bool) Option {
	return func(s *Settings) {
		s.Verbose = verbose
		if verbose {
			level := slog.LevelDebug
			s.LogLevel = &level
		}
	}
}

// WithConfigFile reads configuration from path instead of the default location.
func WithConfigFile(path string) Option {
	return func(s *Settings) {
		s.ConfigFile = path
	}
}

// WithWorkDir bootstraps dir instead of the current directory.
func WithWorkDir(dir string) Option {
	return func(s *Settings) {
		s.WorkDir = dir
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	settings := &Settings{}

	for _, opt := range opts {
		opt(settings)
	}

	return NewAppWithSettings(ctx, settings)
}
