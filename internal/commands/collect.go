package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-usermap/internal/collector"
	"github.com/stahnma/gh-usermap/internal/geocode"
	ghub "github.com/stahnma/gh-usermap/internal/github"
)

func (a *App) newCollectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Crawl dependents and stargazers and update the usage dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RunCollect(cmd.Context())
		},
	}
}

// RunCollect crawls the configured account and merges the results into the
// dataset file. Also used by the Lambda entry point.
func (a *App) RunCollect(ctx context.Context) error {
	if err := a.ensureClient(); err != nil {
		return err
	}
	if err := a.ensureGeocoder(); err != nil {
		return err
	}
	if a.Config.Account == "" {
		return fmt.Errorf("GITHUB_USER must be set")
	}

	c := &collector.Collector{
		GitHub:     a.GHClient,
		Fetcher:    ghub.NewFetcher(a.Logger),
		Dependents: a.Dependents,
		Geocoder:   geocode.NewResolver(a.Geocoder, a.Logger),
		Logger:     a.Logger,
	}
	if err := c.Run(ctx, a.Config.Account, a.Config.ExtraRepos, a.Config.DatasetFile); err != nil {
		return fmt.Errorf("collecting usage data: %w", err)
	}
	return nil
}
