package github

import (
	"errors"
	"net/http"

	gh "github.com/google/go-github/v82/github"

	apierrors "github.com/kergoth/GitHub-Backup/internal/errors"
)

// wrapError converts go-github errors into APIErrors carrying the HTTP status.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return apierrors.NewAPIHTTPError(op, statusCode(rateLimitErr.Response, http.StatusForbidden), rateLimitErr.Message, err)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apierrors.NewAPIHTTPError(op, statusCode(abuseErr.Response, http.StatusForbidden), abuseErr.Message, err)
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		return apierrors.NewAPIHTTPError(op, statusCode(errResp.Response, 0), errResp.Message, err)
	}

	return apierrors.NewAPIError(op, err.Error(), err)
}

func statusCode(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
