package backup

import (
	"sort"

	"github.com/samber/lo"
)

// Kind distinguishes the two clonable item types.
type Kind int

const (
	KindRepository Kind = iota
	KindGist
)

func (k Kind) String() string {
	if k == KindGist {
		return "gist"
	}
	return "repository"
}

// RemoteItem identifies one clonable unit on the hosting service.
type RemoteItem struct {
	ID           string
	Owner        string // login of the owning account
	Name         string // directory name on disk
	DisplayName  string // owner/name for both repositories and gists
	TransportURL string
	Private      bool
	Fork         bool
	Kind         Kind
}

// Category is the bucket a RemoteItem is backed up under.
type Category string

const (
	CategoryPublic       Category = "public"
	CategoryPrivate      Category = "private"
	CategoryForks        Category = "forks"
	CategoryWatched      Category = "watched"
	CategoryStarred      Category = "starred"
	CategoryGistsPublic  Category = "gists/public"
	CategoryGistsPrivate Category = "gists/private"
	CategoryGistsStarred Category = "gists/starred"
)

// AllCategories lists every known category in lexicographic order.
var AllCategories = []Category{
	CategoryForks,
	CategoryGistsPrivate,
	CategoryGistsPublic,
	CategoryGistsStarred,
	CategoryPrivate,
	CategoryPublic,
	CategoryStarred,
	CategoryWatched,
}

// IsGist reports whether the category holds gists.
func (c Category) IsGist() bool {
	return c == CategoryGistsPublic || c == CategoryGistsPrivate || c == CategoryGistsStarred
}

// ForeignOwners reports whether the category collects items owned by other
// accounts. Items in these categories are stored under their owner's login.
func (c Category) ForeignOwners() bool {
	return c == CategoryWatched || c == CategoryStarred || c == CategoryGistsStarred
}

// ParseCategory returns the category named s.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, lo.Contains(AllCategories, c)
}

// ClassifiedSet maps each category to its items in the order they were listed.
type ClassifiedSet map[Category][]RemoteItem

// Categories returns the non-empty categories in lexicographic order.
func (s ClassifiedSet) Categories() []Category {
	keys := lo.Filter(lo.Keys(map[Category][]RemoteItem(s)), func(c Category, _ int) bool {
		return len(s[c]) > 0
	})
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the total number of items across all categories.
func (s ClassifiedSet) Len() int {
	return lo.SumBy(lo.Values(map[Category][]RemoteItem(s)), func(items []RemoteItem) int { return len(items) })
}

func (s ClassifiedSet) add(c Category, items ...RemoteItem) {
	if len(items) == 0 {
		return
	}
	s[c] = append(s[c], items...)
}
