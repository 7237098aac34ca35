package github

import (
	"context"
	"errors"
	"time"

	gh "github.com/google/go-github/v82/github"
	logger "github.com/sirupsen/logrus"
)

// sleep is a variable so tests can skip rate limit waits
var sleep = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// withRetry calls fn, waiting out primary and secondary rate limits.
func withRetry[T any](ctx context.Context, c *Client, fn func() (T, *gh.Response, error)) (T, error) {
	v, _, err := withRetryResp(ctx, c, fn)
	return v, err
}

func withRetryResp[T any](ctx context.Context, c *Client, fn func() (T, *gh.Response, error)) (T, *gh.Response, error) {
	var (
		v    T
		resp *gh.Response
		err  error
	)
	for attempt := 0; attempt <= maxRetries; attempt++ {
		v, resp, err = fn()
		if err == nil {
			return v, resp, nil
		}

		wait, ok := rateLimitWait(err)
		if !ok || attempt == maxRetries || wait > c.maxWait {
			return v, resp, err
		}

		logger.WithFields(logger.Fields{
			"attempt": attempt + 1,
			"wait":    wait.Round(time.Second),
		}).Warn("Rate limited by GitHub API, waiting")

		if serr := sleep(ctx, wait); serr != nil {
			return v, resp, serr
		}
	}
	return v, resp, err
}

func rateLimitWait(err error) (time.Duration, bool) {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return time.Until(rateLimitErr.Rate.Reset.Time) + time.Second, true
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		if abuseErr.RetryAfter != nil {
			return *abuseErr.RetryAfter, true
		}
		return time.Minute, true
	}
	return 0, false
}
