package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"secretariat/internal/app"
	"secretariat/internal/commands"
)

const bannerTitle = "Secretariat"

// errBootstrapFailed signals a failed run whose message was already shown.
var errBootstrapFailed = errors.New("bootstrap failed")

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile string
	verbose bool

	application *app.App
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance.
func GetApp() *app.App {
	return application
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "secretariat [name] [description]",
	Short: "Turn the current directory into a Git repository pushed to a new GitHub remote",
	Long: `Secretariat creates a GitHub repository for the current directory, writes a
.gitignore, makes an initial commit and pushes it to the new remote.

The repository name defaults to the directory name. A GitHub token is created
on first use from your username and password and kept in
$HOME/.config/secretariat/credentials.yaml.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runBootstrap,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errBootstrapFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/secretariat/config.yaml)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func initApp(ctx context.Context) error {
	opts := []app.Option{app.WithConfigFile(cfgFile)}
	if verbose {
		opts = append(opts, app.WithVerbose(true))
	}

	var err error
	application, err = app.NewApp(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return nil
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := initApp(ctx); err != nil {
		return err
	}

	application.Console.Banner(bannerTitle)

	result := application.Bootstrap.Execute(ctx, commands.BootstrapRequest{Args: args})
	application.Logger.DebugContext(ctx, "Run finished", "result", result.String())
	if !result.OK() {
		return errBootstrapFailed
	}
	return nil
}
