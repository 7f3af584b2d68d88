package github

import (
	"context"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// Client defines the GitHub API methods used by this application.
type Client interface {
	GetUser(ctx context.Context, login string) (*gh.User, *gh.Response, error)
	ListRepositories(ctx context.Context, user string, opts *gh.RepositoryListByUserOptions) ([]*gh.Repository, *gh.Response, error)
	ListStargazers(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Stargazer, *gh.Response, error)
}

// realClient wraps the go-github client to implement Client.
type realClient struct {
	inner *gh.Client
}

// NewClient creates a new GitHub API client authenticated with the given token.
func NewClient(token string) Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	return &realClient{inner: gh.NewClient(httpClient)}
}

func (c *realClient) GetUser(ctx context.Context, login string) (*gh.User, *gh.Response, error) {
	return c.inner.Users.Get(ctx, login)
}

func (c *realClient) ListRepositories(ctx context.Context, user string, opts *gh.RepositoryListByUserOptions) ([]*gh.Repository, *gh.Response, error) {
	return c.inner.Repositories.ListByUser(ctx, user, opts)
}

func (c *realClient) ListStargazers(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Stargazer, *gh.Response, error) {
	return c.inner.Activity.ListStargazers(ctx, owner, repo, opts)
}
