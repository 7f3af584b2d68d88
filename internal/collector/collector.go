// Package collector drives the crawl: enumerate the account's repositories,
// discover dependent-package owners and stargazers, resolve each identity to
// a geocoded location, and merge the results into the persisted dataset.
package collector

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/stahnma/gh-usermap/internal/dataset"
	"github.com/stahnma/gh-usermap/internal/dependents"
	"github.com/stahnma/gh-usermap/internal/geocode"
	ghub "github.com/stahnma/gh-usermap/internal/github"
)

// DependentsSource lists the packages of a repository and their public
// dependents. Implemented by dependents.Client.
type DependentsSource interface {
	Fetch(ctx context.Context, fullName string) ([]dependents.Package, error)
}

// Collector owns all mutable crawl state for one run.
type Collector struct {
	GitHub     ghub.Client
	Fetcher    *ghub.Fetcher
	Dependents DependentsSource
	Geocoder   *geocode.Resolver
	Logger     *log.Logger

	// locations maps identity name to its known location string. Seeded
	// from the persisted dataset, extended as profiles are fetched, so an
	// identity costs at most one profile call per run.
	locations map[string]string

	set *dataset.Dataset
}

// Run crawls account's repositories plus the extra "owner/name" specs and
// merges every resolved identity into the dataset file at path.
func (c *Collector) Run(ctx context.Context, account string, extraRepos []string, path string) error {
	prior, err := dataset.Load(path)
	if err != nil {
		return err
	}
	c.seed(prior)

	repos, err := ghub.ListOwnedRepos(ctx, c.GitHub, c.Fetcher, account)
	if err != nil {
		return err
	}
	for _, spec := range extraRepos {
		repo, err := ghub.ParseRepoSpec(spec)
		if err != nil {
			return err
		}
		repo.Stargazers, err = ghub.ListRepoStargazers(ctx, c.GitHub, c.Fetcher, repo.Owner, repo.Name)
		if err != nil {
			return err
		}
		repos = append(repos, repo)
	}

	for _, repo := range repos {
		c.Logger.Info("checking", "repo", repo.Name)

		packages, err := c.Dependents.Fetch(ctx, repo.FullName())
		if err != nil {
			return err
		}
		for _, pkg := range packages {
			for _, dep := range pkg.Dependents {
				if err := c.resolve(ctx, ghub.OwnerOf(dep)); err != nil {
					return err
				}
			}
			for _, stargazer := range repo.Stargazers {
				if err := c.resolve(ctx, stargazer); err != nil {
					return err
				}
			}
		}
	}

	if err := c.set.Save(path); err != nil {
		return err
	}
	c.Logger.Info("saved", "records", c.set.Len(), "file", path)
	return nil
}

// seed primes the location and geocode caches from the prior dataset and
// carries its records forward, so identities that are not rediscovered this
// run are kept rather than dropped.
func (c *Collector) seed(prior *dataset.Dataset) {
	c.locations = make(map[string]string)
	c.set = dataset.New()
	for _, r := range prior.Records() {
		c.locations[r.Name] = r.Location
		c.Geocoder.Seed(r.Location, geocode.Coordinate{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
		c.set.Add(r)
	}
}

// resolve determines the location of one identity and records it. A missing,
// empty, non-alphabetic, or ungeocodable location means no record; only
// provider failures other than rate limits surface as errors.
func (c *Collector) resolve(ctx context.Context, name string) error {
	location, ok := c.locations[name]
	if ok {
		c.Logger.Debug("location cache hit", "user", name)
	} else {
		var err error
		location, err = ghub.FetchUserLocation(ctx, c.GitHub, c.Fetcher, name)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", name, err)
		}
		if location != "" {
			c.locations[name] = location
		}
	}
	if location == "" || !geocode.HasAlpha(location) {
		return nil
	}

	coord, ok := c.Geocoder.Lookup(location)
	if !ok {
		return nil
	}

	c.set.Add(dataset.Record{
		Name:      name,
		Location:  location,
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
	})
	return nil
}
