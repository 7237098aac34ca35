// Package github lists the repositories and gists of an account through the
// GitHub REST API and converts them into backup items.
package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/kergoth/GitHub-Backup/internal/credentials"
)

const (
	perPage        = 100
	maxRetries     = 3
	defaultMaxWait = 15 * time.Minute
)

// Options configures a Client.
type Options struct {
	Credentials credentials.Credentials
	// APIURL is the GitHub Enterprise API base URL. Empty means github.com.
	APIURL string
	// MaxRateLimitWait bounds how long a rate-limited call waits for the
	// limit to reset before giving up.
	MaxRateLimitWait time.Duration
	// HTTPClient is used for anonymous access. Authenticated clients wrap
	// its transport.
	HTTPClient *http.Client
}

// Client wraps the go-github client with the listing calls the backup needs.
type Client struct {
	client  *gh.Client
	maxWait time.Duration
	anon    bool
}

// NewClient creates a Client authenticated with a token when one is set,
// with basic auth when only a password is set, and anonymous otherwise.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 60 * time.Second}
	}

	httpClient := base
	creds := opts.Credentials
	switch {
	case creds.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token})
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, ts)
	case creds.Password != "":
		tp := &gh.BasicAuthTransport{
			Username:  creds.Login,
			Password:  creds.Password,
			Transport: base.Transport,
		}
		httpClient = &http.Client{Transport: tp, Timeout: base.Timeout}
	}

	client := gh.NewClient(httpClient)
	if opts.APIURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", opts.APIURL, err)
		}
	}

	maxWait := opts.MaxRateLimitWait
	if maxWait == 0 {
		maxWait = defaultMaxWait
	}

	return &Client{
		client:  client,
		maxWait: maxWait,
		anon:    creds.Anonymous(),
	}, nil
}

// AuthenticatedUser returns the login the client is authenticated as, or an
// empty string for an anonymous client.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	if c.anon {
		return "", nil
	}
	user, err := withRetry(ctx, c, func() (*gh.User, *gh.Response, error) {
		return c.client.Users.Get(ctx, "")
	})
	if err != nil {
		return "", wrapError("AuthenticatedUser", err)
	}
	return user.GetLogin(), nil
}
