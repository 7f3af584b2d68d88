package github

import (
	"errors"
	"testing"
	"time"

	gh "github.com/google/go-github/v68/github"
)

func retryAfterError(d time.Duration) error {
	return &gh.AbuseRateLimitError{RetryAfter: &d}
}

func resetError(reset time.Time) error {
	return &gh.RateLimitError{Rate: gh.Rate{Reset: gh.Timestamp{Time: reset}}}
}

func TestBackoffDuration_RetryAfter(t *testing.T) {
	now := time.Now()

	wait, ok := backoffDuration(retryAfterError(10*time.Second), now)
	if !ok {
		t.Fatal("expected rate-limit error to be recognized")
	}
	if wait != 15*time.Second {
		t.Errorf("wait = %v, want 15s (Retry-After 10s + 5s grace)", wait)
	}
}

func TestBackoffDuration_RetryAfterClamped(t *testing.T) {
	wait, ok := backoffDuration(retryAfterError(-30*time.Second), time.Now())
	if !ok {
		t.Fatal("expected rate-limit error to be recognized")
	}
	if wait != backoffMin {
		t.Errorf("wait = %v, want clamp to %v", wait, backoffMin)
	}
}

func TestBackoffDuration_Reset(t *testing.T) {
	now := time.Now()

	wait, ok := backoffDuration(resetError(now.Add(30*time.Second)), now)
	if !ok {
		t.Fatal("expected rate-limit error to be recognized")
	}
	if wait != 35*time.Second {
		t.Errorf("wait = %v, want 35s (reset in 30s + 5s grace)", wait)
	}
}

func TestBackoffDuration_ResetInPast(t *testing.T) {
	now := time.Now()

	wait, ok := backoffDuration(resetError(now.Add(-time.Hour)), now)
	if !ok {
		t.Fatal("expected rate-limit error to be recognized")
	}
	if wait != backoffMin {
		t.Errorf("wait = %v, want clamp to %v", wait, backoffMin)
	}
}

func TestBackoffDuration_NoMetadata(t *testing.T) {
	wait, ok := backoffDuration(&gh.AbuseRateLimitError{}, time.Now())
	if !ok {
		t.Fatal("expected rate-limit error to be recognized")
	}
	if wait != backoffDefault {
		t.Errorf("wait = %v, want default %v", wait, backoffDefault)
	}
}

func TestBackoffDuration_OtherError(t *testing.T) {
	_, ok := backoffDuration(errors.New("boom"), time.Now())
	if ok {
		t.Error("plain errors must not be treated as rate limits")
	}
}

func TestFetch_RetriesSameOperation(t *testing.T) {
	var sleeps []time.Duration
	f := quietFetcher(&sleeps)

	calls := 0
	got, _, err := Fetch(f, func() (string, *gh.Response, error) {
		calls++
		if calls < 3 {
			return "", nil, retryAfterError(10 * time.Second)
		}
		return "done", emptyResponse(), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "done" {
		t.Errorf("got %q, want done", got)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
	if len(sleeps) != 2 {
		t.Fatalf("slept %d times, want 2", len(sleeps))
	}
	for _, d := range sleeps {
		if d < 15*time.Second {
			t.Errorf("slept %v, want at least 15s", d)
		}
	}
}

func TestFetch_PassesThroughOtherErrors(t *testing.T) {
	var sleeps []time.Duration
	f := quietFetcher(&sleeps)

	wantErr := errors.New("not found")
	calls := 0
	_, _, err := Fetch(f, func() (int, *gh.Response, error) {
		calls++
		return 0, nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1 (no retry)", calls)
	}
	if len(sleeps) != 0 {
		t.Errorf("slept %d times, want 0", len(sleeps))
	}
}
