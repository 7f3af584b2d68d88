package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	geo "github.com/codingsince1985/geo-golang"
	"github.com/spf13/cobra"

	"github.com/stahnma/gh-usermap/internal/collector"
	"github.com/stahnma/gh-usermap/internal/config"
	"github.com/stahnma/gh-usermap/internal/dependents"
	"github.com/stahnma/gh-usermap/internal/geocode"
	ghub "github.com/stahnma/gh-usermap/internal/github"
)

// App holds shared application state.
type App struct {
	Config     config.Config
	Logger     *log.Logger
	GHClient   ghub.Client
	Dependents collector.DependentsSource
	Geocoder   geo.Geocoder
	GitSHA     string
	GitDirty   string
}

// NewApp creates a new App from the given configuration.
func NewApp(cfg config.Config, gitSHA, gitDirty string) *App {
	level := log.InfoLevel
	if cfg.DebugMode {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		GitSHA:   gitSHA,
		GitDirty: gitDirty,
	}
}

// ensureClient creates the GitHub and dependents clients if they don't exist.
func (a *App) ensureClient() error {
	if a.GHClient == nil {
		if a.Config.GitHubToken == "" {
			return fmt.Errorf("GITHUB_TOKEN must be set")
		}
		a.GHClient = ghub.NewClient(a.Config.GitHubToken)
	}
	if a.Dependents == nil {
		a.Dependents = dependents.NewClient()
	}
	return nil
}

// ensureGeocoder creates the geocoding provider if it doesn't exist.
func (a *App) ensureGeocoder() error {
	if a.Geocoder != nil {
		return nil
	}
	if a.Config.GeocoderToken == "" {
		return fmt.Errorf("GEOCODER_TOKEN must be set")
	}
	a.Geocoder = geocode.NewTomTomGeocoder(a.Config.GeocoderToken)
	return nil
}

// NewRootCommand creates the root cobra command with all subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   os.Args[0],
		Short: "Map where the users of your GitHub repositories are.",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(a.newCollectCommand())
	rootCmd.AddCommand(a.newRenderCommand())
	rootCmd.AddCommand(a.newExportCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}
