package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "phase one leaves repo_type",
			template: "./{username}/{repo_type}",
			vars:     map[string]string{"username": "alice"},
			want:     "./alice/{repo_type}",
		},
		{
			name:     "phase two completes",
			template: "./alice/{repo_type}",
			vars:     map[string]string{"repo_type": "public"},
			want:     "./alice/public",
		},
		{
			name:     "unknown placeholder left verbatim",
			template: "{backupdir}/{owner}",
			vars:     map[string]string{"backupdir": "/b", "owner": "x"},
			want:     "/b/{owner}",
		},
		{
			name:     "value is not rescanned",
			template: "{username}/{repo_type}",
			vars:     map[string]string{"username": "{repo_type}", "repo_type": "public"},
			want:     "{repo_type}/public",
		},
		{
			name:     "repeated placeholder",
			template: "{username}-{username}",
			vars:     map[string]string{"username": "bob"},
			want:     "bob-bob",
		},
		{
			name:     "no placeholders",
			template: "/srv/backup",
			vars:     map[string]string{"username": "bob"},
			want:     "/srv/backup",
		},
		{
			name:     "unbalanced braces",
			template: "{username/{repo_type",
			vars:     map[string]string{"username": "bob", "repo_type": "public"},
			want:     "{username/{repo_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.template, tt.vars))
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate(DefaultRepoTemplate))
	assert.NoError(t, ValidateTemplate(DefaultGistTemplate))
	assert.NoError(t, ValidateTemplate("/srv/backup"))
	assert.Error(t, ValidateTemplate(""))
	assert.ErrorContains(t, ValidateTemplate("{backupdir}/{owner}"), "{owner}")
}

func TestTemplates_Dir(t *testing.T) {
	tests := []struct {
		name      string
		templates Templates
		category  Category
		want      string
	}{
		{
			name:      "default repository layout",
			templates: Templates{Repo: DefaultRepoTemplate, Gist: DefaultGistTemplate},
			category:  CategoryForks,
			want:      "/b/alice/forks",
		},
		{
			name:      "default gist layout nests under the repository layout",
			templates: Templates{Repo: DefaultRepoTemplate, Gist: DefaultGistTemplate},
			category:  CategoryGistsStarred,
			want:      "/b/alice/gists/starred",
		},
		{
			name:      "custom gist template",
			templates: Templates{Repo: "{backupdir}/repos/{repo_type}", Gist: "{backupdir}/{username}-gists/{repo_type}"},
			category:  CategoryGistsPublic,
			want:      "/b/alice-gists/gists/public",
		},
		{
			name:      "gist template ignored for repositories",
			templates: Templates{Repo: "{backupdir}/{repo_type}", Gist: "/elsewhere"},
			category:  CategoryWatched,
			want:      "/b/watched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bound := tt.templates.Bind("/b", "alice")
			assert.Equal(t, tt.want, bound.Dir(tt.category))
		})
	}
}

func TestTemplates_DirDoesNotRescanBoundValues(t *testing.T) {
	bound := Templates{Repo: DefaultRepoTemplate, Gist: DefaultGistTemplate}.Bind("/b/{repo_type}", "{repodir}")

	assert.Equal(t, "/b/{repo_type}/{repodir}/public", bound.Dir(CategoryPublic))
	assert.Equal(t, "/b/{repo_type}/{repodir}/gists/private", bound.Dir(CategoryGistsPrivate))
}

func TestTemplates_DirDoesNotRescanRepoDir(t *testing.T) {
	bound := Templates{Repo: "{backupdir}/{repo_type}", Gist: "{repodir}/x"}.Bind("/b/{username}", "alice")

	assert.Equal(t, "/b/{username}/gists/public/x", bound.Dir(CategoryGistsPublic))
}
