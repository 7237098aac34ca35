package github

import (
	"context"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v82/github"
	"github.com/samber/lo"
	logger "github.com/sirupsen/logrus"

	"github.com/kergoth/GitHub-Backup/internal/backup"
	apierrors "github.com/kergoth/GitHub-Backup/internal/errors"
)

// paginate follows NextPage links until the listing is exhausted.
func paginate[T any](ctx context.Context, c *Client, op string, fetch func(opts gh.ListOptions) ([]T, *gh.Response, error)) ([]T, error) {
	var all []T
	opts := gh.ListOptions{PerPage: perPage}
	for {
		items, resp, err := withRetryResp(ctx, c, func() ([]T, *gh.Response, error) {
			return fetch(opts)
		})
		if err != nil {
			return nil, wrapError(op, err)
		}
		all = append(all, items...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListOrgRepositories lists every repository of the organization name.
func (c *Client) ListOrgRepositories(ctx context.Context, name string) ([]backup.RemoteItem, error) {
	repos, err := paginate(ctx, c, "ListOrgRepositories", func(opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
		return c.client.Repositories.ListByOrg(ctx, name, &gh.RepositoryListByOrgOptions{Type: "all", ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	return repositoryItems(repos), nil
}

// ListUserRepositories lists the repositories owned by the user name that the
// client can see.
func (c *Client) ListUserRepositories(ctx context.Context, name string) ([]backup.RemoteItem, error) {
	repos, err := paginate(ctx, c, "ListUserRepositories", func(opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
		return c.client.Repositories.ListByUser(ctx, name, &gh.RepositoryListByUserOptions{Type: "owner", ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	return repositoryItems(repos), nil
}

// ListAuthenticatedUserRepositories lists the repositories owned by the
// authenticated user, private ones included.
func (c *Client) ListAuthenticatedUserRepositories(ctx context.Context) ([]backup.RemoteItem, error) {
	repos, err := paginate(ctx, c, "ListAuthenticatedUserRepositories", func(opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
		return c.client.Repositories.ListByAuthenticatedUser(ctx, &gh.RepositoryListByAuthenticatedUserOptions{Affiliation: "owner", ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	return repositoryItems(repos), nil
}

// ListOwnedRepositories lists name's repositories, trying name as an
// organization first and as a user only when the organization is not found.
// self selects the authenticated listing so private repositories are
// included.
func (c *Client) ListOwnedRepositories(ctx context.Context, name string, self bool) ([]backup.RemoteItem, error) {
	items, err := c.ListOrgRepositories(ctx, name)
	if err == nil {
		return items, nil
	}
	if !apierrors.IsNotFound(err) {
		return nil, err
	}

	logger.WithField("name", name).Debug("Not found as organization, trying as user")
	if self {
		return c.ListAuthenticatedUserRepositories(ctx)
	}
	return c.ListUserRepositories(ctx, name)
}

// ListGists lists the gists owned by name. self lists the authenticated
// user's gists instead, secret gists included.
func (c *Client) ListGists(ctx context.Context, name string, self bool) ([]backup.RemoteItem, error) {
	user := name
	if self {
		user = ""
	}
	gists, err := paginate(ctx, c, "ListGists", func(opts gh.ListOptions) ([]*gh.Gist, *gh.Response, error) {
		return c.client.Gists.List(ctx, user, &gh.GistListOptions{ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	return gistItems(gists), nil
}

// ListStarredGists lists the gists starred by the authenticated user.
func (c *Client) ListStarredGists(ctx context.Context) ([]backup.RemoteItem, error) {
	gists, err := paginate(ctx, c, "ListStarredGists", func(opts gh.ListOptions) ([]*gh.Gist, *gh.Response, error) {
		return c.client.Gists.ListStarred(ctx, &gh.GistListOptions{ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	return gistItems(gists), nil
}

// ListWatchedRepositories lists the repositories name is watching.
func (c *Client) ListWatchedRepositories(ctx context.Context, name string) ([]backup.RemoteItem, error) {
	repos, err := paginate(ctx, c, "ListWatchedRepositories", func(opts gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
		return c.client.Activity.ListWatched(ctx, name, &opts)
	})
	if err != nil {
		return nil, err
	}
	return repositoryItems(repos), nil
}

// ListStarredRepositories lists the repositories name has starred.
func (c *Client) ListStarredRepositories(ctx context.Context, name string) ([]backup.RemoteItem, error) {
	starred, err := paginate(ctx, c, "ListStarredRepositories", func(opts gh.ListOptions) ([]*gh.StarredRepository, *gh.Response, error) {
		return c.client.Activity.ListStarred(ctx, name, &gh.ActivityListStarredOptions{ListOptions: opts})
	})
	if err != nil {
		return nil, err
	}
	repos := make([]*gh.Repository, 0, len(starred))
	for _, s := range starred {
		repos = append(repos, s.GetRepository())
	}
	return repositoryItems(repos), nil
}

// FetchListing gathers everything target owns, watches and stars. Starred
// gists are only listed when the client is authenticated as target.
func (c *Client) FetchListing(ctx context.Context, target, authenticatedUser string) (backup.Listing, error) {
	self := authenticatedUser != "" && strings.EqualFold(authenticatedUser, target)

	var listing backup.Listing

	repos, err := c.ListOwnedRepositories(ctx, target, self)
	if err != nil {
		return listing, err
	}
	gists, err := c.ListGists(ctx, target, self)
	if err != nil {
		return listing, err
	}
	listing.Owned = append(repos, gists...)

	if listing.Watched, err = c.ListWatchedRepositories(ctx, target); err != nil {
		return listing, err
	}
	if listing.Starred, err = c.ListStarredRepositories(ctx, target); err != nil {
		return listing, err
	}
	if self {
		if listing.StarredGists, err = c.ListStarredGists(ctx); err != nil {
			return listing, err
		}
	}

	logger.WithFields(logger.Fields{
		"owned":         len(listing.Owned),
		"watched":       len(listing.Watched),
		"starred":       len(listing.Starred),
		"starred_gists": len(listing.StarredGists),
	}).Debugf("Fetched listing for %s", target)

	return listing, nil
}

func repositoryItems(repos []*gh.Repository) []backup.RemoteItem {
	return lo.FilterMap(repos, func(r *gh.Repository, _ int) (backup.RemoteItem, bool) {
		if r == nil {
			return backup.RemoteItem{}, false
		}
		return backup.RemoteItem{
			ID:           strconv.FormatInt(r.GetID(), 10),
			Owner:        r.GetOwner().GetLogin(),
			Name:         r.GetName(),
			DisplayName:  r.GetFullName(),
			TransportURL: r.GetCloneURL(),
			Private:      r.GetPrivate(),
			Fork:         r.GetFork(),
			Kind:         backup.KindRepository,
		}, true
	})
}

func gistItems(gists []*gh.Gist) []backup.RemoteItem {
	return lo.FilterMap(gists, func(g *gh.Gist, _ int) (backup.RemoteItem, bool) {
		if g == nil {
			return backup.RemoteItem{}, false
		}
		owner := g.GetOwner().GetLogin()
		display := g.GetID()
		if owner != "" {
			display = owner + "/" + g.GetID()
		}
		return backup.RemoteItem{
			ID:           g.GetID(),
			Owner:        owner,
			Name:         g.GetID(),
			DisplayName:  display,
			TransportURL: g.GetGitPullURL(),
			Private:      !g.GetPublic(),
			Kind:         backup.KindGist,
		}, true
	})
}
