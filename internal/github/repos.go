package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v68/github"
)

// ListOwnedRepos returns every repository owned by account, each with its
// stargazer logins prefetched. All API calls go through the Fetcher so
// rate-limit exhaustion blocks instead of failing.
func ListOwnedRepos(ctx context.Context, client Client, f *Fetcher, account string) ([]Repo, error) {
	var repos []Repo

	opts := &gh.RepositoryListByUserOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	for {
		page, resp, err := Fetch(f, func() ([]*gh.Repository, *gh.Response, error) {
			return client.ListRepositories(ctx, account, opts)
		})
		if err != nil {
			return nil, fmt.Errorf("listing repositories for %s: %w", account, err)
		}

		for _, r := range page {
			repo := Repo{Owner: r.GetOwner().GetLogin(), Name: r.GetName()}
			repo.Stargazers, err = ListRepoStargazers(ctx, client, f, repo.Owner, repo.Name)
			if err != nil {
				return nil, err
			}
			repos = append(repos, repo)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// ListRepoStargazers returns the stargazer logins for one repository.
func ListRepoStargazers(ctx context.Context, client Client, f *Fetcher, owner, name string) ([]string, error) {
	var logins []string

	opts := &gh.ListOptions{PerPage: 100}
	for {
		page, resp, err := Fetch(f, func() ([]*gh.Stargazer, *gh.Response, error) {
			return client.ListStargazers(ctx, owner, name, opts)
		})
		if err != nil {
			return nil, fmt.Errorf("listing stargazers for %s/%s: %w", owner, name, err)
		}

		for _, sg := range page {
			if login := sg.GetUser().GetLogin(); login != "" {
				logins = append(logins, login)
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return logins, nil
}

// FetchUserLocation returns the self-reported profile location for a login.
// An empty string means the profile has no location set.
func FetchUserLocation(ctx context.Context, client Client, f *Fetcher, login string) (string, error) {
	user, _, err := Fetch(f, func() (*gh.User, *gh.Response, error) {
		return client.GetUser(ctx, login)
	})
	if err != nil {
		return "", fmt.Errorf("fetching user %s: %w", login, err)
	}
	return user.GetLocation(), nil
}
