package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"secretariat/internal/adapters/filesystem"
	"secretariat/internal/adapters/git"
	"secretariat/internal/adapters/prompt"
	"secretariat/internal/adapters/terminal"
	"secretariat/internal/commands"
	"secretariat/internal/config"
	"secretariat/internal/logging"
	"secretariat/internal/migrations"
	"secretariat/internal/services/auth"
	configsvc "secretariat/internal/services/config"
	"secretariat/internal/services/credentials"
	"secretariat/internal/services/repo"
	"secretariat/internal/ui"
)

// NewAppWithSettings creates a new App with the given settings, wiring all dependencies.
func NewAppWithSettings(ctx context.Context, settings *Settings) (*App, error) {
	// Create filesystem adapter.
	fs := filesystem.New()

	configProvider := configsvc.NewProvider(fs)
	configDir, err := configProvider.GetConfigDir()
	if err != nil {
		return nil, err
	}
	storePath, err := configProvider.GetCredentialStorePath()
	if err != nil {
		return nil, err
	}
	legacyStorePath, err := configProvider.GetLegacyStorePath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(settings.ConfigFile, configDir, storePath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if settings.LogLevel != nil {
		level = *settings.LogLevel
	}
	logger := logging.New(os.Stderr, level, cfg.Log.Format)

	workDir := settings.WorkDir
	if workDir == "" {
		if workDir, err = fs.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	home, err := fs.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path, home)

	logger.DebugContext(ctx, "Initializing secretariat with configuration",
		"logLevel", level.String(),
		"verbose", settings.Verbose,
		"configFile", cfg.File,
		"storePath", cfg.Store.Path,
		"apiURL", cfg.GitHub.APIURL,
		"workDir", workDir)

	// Terminal I/O.
	term := terminal.NewAdapter(os.Stdin, os.Stderr)
	prompter := prompt.NewHuhPrompter(term)
	spinner := ui.NewSpinner(term)
	console := ui.NewConsole(os.Stdout, os.Stderr)

	gh := NewGitHubServices(cfg.GitHub, logger)

	store := credentials.NewFileStore(fs, cfg.Store.Path, logger).
		WithLegacyImport(legacyStorePath, migrations.NewMigrator(logger))
	session := auth.NewSession(gh.ClientFactory)
	resolver := auth.NewResolver(store, gh.Exchanger, prompter, spinner, credentials.TokenKey, logger)

	vcs := git.NewAdapter(workDir, git.Options{
		AuthorName:  cfg.Git.AuthorName,
		AuthorEmail: cfg.Git.AuthorEmail,
		SSHKeyPath:  cfg.Git.SSHKeyPath,
	}, logger)

	remote := repo.NewRemoteService(session, prompter, spinner, fs, workDir, logger)
	local := repo.NewLocalService(vcs, fs, prompter, spinner, workDir, cfg.Gitignore.Defaults, logger)

	bootstrap := commands.NewBootstrapCommand(vcs, resolver, session, remote, local, console, logger)

	return &App{
		Bootstrap:      bootstrap,
		Config:         cfg,
		ConfigProvider: configProvider,
		FileSystem:     fs,
		Console:        console,
		Logger:         logger,
		Settings:       settings,
	}, nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
