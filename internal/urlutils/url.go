// Package urlutils validates the transport URLs handed to git and strips
// credentials from URLs before they are logged.
package urlutils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL indicates that the provided URL is not valid
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrEmptyURL indicates that no URL was provided
	ErrEmptyURL = errors.New("empty transport URL")

	// ErrUnsupportedScheme indicates a scheme git should not be asked to use
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// scp-like syntax: [user@]host:path
	scpRegex = regexp.MustCompile(`^(?:[A-Za-z0-9._~-]+@)?[A-Za-z0-9.-]+:[^/\\:].*$`)

	allowedSchemes = map[string]bool{
		"https":   true,
		"http":    true,
		"ssh":     true,
		"git":     true,
		"git+ssh": true,
		"file":    true,
	}
)

// ValidateTransportURL checks that rawURL is something git can clone from
// without being mistaken for an option. It accepts:
//   - https://github.com/owner/repo.git (and http://)
//   - ssh://git@github.com/owner/repo.git, git://host/path
//   - git@github.com:owner/repo.git
//   - file:///path/to/repo.git
func ValidateTransportURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return ErrEmptyURL
	}
	if strings.HasPrefix(rawURL, "-") || strings.ContainsAny(rawURL, "\n\r\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	if !strings.Contains(rawURL, "://") {
		if scpRegex.MatchString(rawURL) {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !allowedSchemes[strings.ToLower(parsedURL.Scheme)] {
		return fmt.Errorf("%w: %s", ErrUnsupportedScheme, parsedURL.Scheme)
	}
	if parsedURL.Scheme != "file" && parsedURL.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}
	if parsedURL.Path == "" || parsedURL.Path == "/" {
		return fmt.Errorf("%w: missing repository path in %q", ErrInvalidURL, rawURL)
	}
	return nil
}

// Redact removes any credentials from rawURL so it can be logged.
func Redact(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	u.User = nil
	return u.String()
}
