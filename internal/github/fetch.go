package github

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	gh "github.com/google/go-github/v68/github"
)

const (
	// backoffGrace is added on top of whatever the API reports, so the
	// retry lands comfortably after the quota reset.
	backoffGrace = 5 * time.Second

	// backoffDefault applies when a rate-limit error carries no timing
	// metadata at all. Retrying immediately would spin against the API.
	backoffDefault = 5 * time.Second

	backoffMin = 1 * time.Second
)

// Fetcher retries rate-limited GitHub calls after sleeping until the quota
// resets. There is no retry cap: the tool runs as a batch job and simply
// parks until the API lets it continue.
type Fetcher struct {
	Logger *log.Logger

	// Sleep is swapped out in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// NewFetcher creates a Fetcher that sleeps for real.
func NewFetcher(logger *log.Logger) *Fetcher {
	return &Fetcher{Logger: logger, Sleep: time.Sleep}
}

// Fetch executes op, retrying the same call whenever it fails with a GitHub
// rate-limit error. Any other error is returned to the caller.
func Fetch[T any](f *Fetcher, op func() (T, *gh.Response, error)) (T, *gh.Response, error) {
	for {
		v, resp, err := op()
		if err == nil {
			return v, resp, nil
		}
		wait, ok := backoffDuration(err, time.Now())
		if !ok {
			var zero T
			return zero, resp, err
		}
		f.Logger.Info("rate limited, waiting", "wait", wait)
		f.sleep(wait)
	}
}

func (f *Fetcher) sleep(d time.Duration) {
	if f.Sleep != nil {
		f.Sleep(d)
		return
	}
	time.Sleep(d)
}

// backoffDuration computes how long to wait before retrying a rate-limited
// call. The second return is false when err is not a rate-limit error.
//
// Priority: a Retry-After duration from a secondary limit wins over the
// primary quota's reset timestamp. Results are clamped to backoffMin.
func backoffDuration(err error, now time.Time) (time.Duration, bool) {
	var abuse *gh.AbuseRateLimitError
	if errors.As(err, &abuse) {
		if abuse.RetryAfter == nil {
			return backoffDefault, true
		}
		return clamp(*abuse.RetryAfter + backoffGrace), true
	}

	var limit *gh.RateLimitError
	if errors.As(err, &limit) {
		if limit.Rate.Reset.IsZero() {
			return backoffDefault, true
		}
		return clamp(limit.Rate.Reset.Time.Sub(now) + backoffGrace), true
	}

	return 0, false
}

func clamp(d time.Duration) time.Duration {
	if d < backoffMin {
		return backoffMin
	}
	return d
}
