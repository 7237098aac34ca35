package backup

import "strings"

// Listing is everything fetched from the hosting service for one account.
type Listing struct {
	Owned        []RemoteItem // repositories and gists owned by the target
	Watched      []RemoteItem
	Starred      []RemoteItem
	StarredGists []RemoteItem
}

// Classify partitions a listing into mutually exclusive categories.
//
// Starred gists are only kept when the authenticated user is the target
// account, since the API can only list the caller's own starred gists. Watched
// and starred repositories are taken as-is. Owned repositories go to forks,
// private or public, checked in that order: a private fork is a fork.
func Classify(listing Listing, authenticatedUser, targetUser string) ClassifiedSet {
	set := make(ClassifiedSet)

	for _, item := range listing.Owned {
		if item.Kind != KindGist {
			continue
		}
		if item.Private {
			set.add(CategoryGistsPrivate, item)
		} else {
			set.add(CategoryGistsPublic, item)
		}
	}

	if authenticatedUser != "" && strings.EqualFold(authenticatedUser, targetUser) {
		set.add(CategoryGistsStarred, listing.StarredGists...)
	}

	set.add(CategoryWatched, listing.Watched...)
	set.add(CategoryStarred, listing.Starred...)

	for _, item := range listing.Owned {
		if item.Kind == KindGist {
			continue
		}
		switch {
		case item.Fork:
			set.add(CategoryForks, item)
		case item.Private:
			set.add(CategoryPrivate, item)
		default:
			set.add(CategoryPublic, item)
		}
	}

	return set
}
