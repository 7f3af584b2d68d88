package github

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	gh "github.com/google/go-github/v68/github"
)

// mockClient implements Client for testing.
type mockClient struct {
	getUserFn          func(ctx context.Context, login string) (*gh.User, *gh.Response, error)
	listRepositoriesFn func(ctx context.Context, user string, opts *gh.RepositoryListByUserOptions) ([]*gh.Repository, *gh.Response, error)
	listStargazersFn   func(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Stargazer, *gh.Response, error)
}

func (m *mockClient) GetUser(ctx context.Context, login string) (*gh.User, *gh.Response, error) {
	return m.getUserFn(ctx, login)
}

func (m *mockClient) ListRepositories(ctx context.Context, user string, opts *gh.RepositoryListByUserOptions) ([]*gh.Repository, *gh.Response, error) {
	return m.listRepositoriesFn(ctx, user, opts)
}

func (m *mockClient) ListStargazers(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.Stargazer, *gh.Response, error) {
	return m.listStargazersFn(ctx, owner, repo, opts)
}

// quietFetcher returns a Fetcher that records sleeps instead of performing
// them and logs nowhere.
func quietFetcher(sleeps *[]time.Duration) *Fetcher {
	return &Fetcher{
		Logger: log.New(io.Discard),
		Sleep: func(d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		},
	}
}

// emptyResponse returns a *gh.Response that signals no more pages.
func emptyResponse() *gh.Response {
	return &gh.Response{Response: &http.Response{StatusCode: 200}}
}

// pagedResponse returns a *gh.Response pointing at the given next page.
func pagedResponse(next int) *gh.Response {
	r := emptyResponse()
	r.NextPage = next
	return r
}

// makeStargazer builds a Stargazer with the given login.
func makeStargazer(login string) *gh.Stargazer {
	return &gh.Stargazer{User: &gh.User{Login: gh.Ptr(login)}}
}

// makeRepository builds a Repository owned by owner.
func makeRepository(owner, name string) *gh.Repository {
	return &gh.Repository{
		Owner: &gh.User{Login: gh.Ptr(owner)},
		Name:  gh.Ptr(name),
	}
}
