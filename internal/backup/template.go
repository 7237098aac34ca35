package backup

import (
	"fmt"
	"regexp"
)

// Template variable names. Only these are ever substituted.
const (
	VarUsername  = "username"
	VarRepoType  = "repo_type"
	VarBackupDir = "backupdir"
	VarRepoDir   = "repodir"
)

const (
	DefaultRepoTemplate = "{backupdir}/{username}/{repo_type}"
	DefaultGistTemplate = "{repodir}"
)

var (
	placeholderRegex = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

	safeVars = map[string]bool{
		VarUsername:  true,
		VarRepoType:  true,
		VarBackupDir: true,
		VarRepoDir:   true,
	}
)

// Templates holds the directory templates for repositories and gists.
type Templates struct {
	Repo string
	Gist string

	bound map[string]string
}

// Resolve expands {name} placeholders in template from vars in a single pass.
// Placeholders that are not in the safe set or have no value in vars are left
// untouched so they can be resolved in a later phase. Substituted values are
// never re-scanned.
func Resolve(template string, vars map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if !safeVars[name] {
			return match
		}
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// ValidateTemplate rejects empty templates and placeholders outside the safe set.
func ValidateTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("template cannot be empty")
	}
	for _, m := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		if !safeVars[m[1]] {
			return fmt.Errorf("unknown placeholder {%s} in template %q", m[1], template)
		}
	}
	return nil
}

// Bind performs phase one of resolution, fixing the values that are constant
// for the whole run. The templates themselves stay raw so that Dir can expand
// every placeholder in one pass and never rescan a substituted value.
func (t Templates) Bind(backupDir, username string) Templates {
	return Templates{
		Repo: t.Repo,
		Gist: t.Gist,
		bound: map[string]string{
			VarBackupDir: backupDir,
			VarUsername:  username,
		},
	}
}

// Dir performs phase two of resolution and returns the directory that holds
// the items of category c.
func (t Templates) Dir(c Category) string {
	vars := make(map[string]string, len(t.bound)+2)
	for k, v := range t.bound {
		vars[k] = v
	}
	vars[VarRepoType] = string(c)

	repoDir := Resolve(t.Repo, vars)
	if !c.IsGist() {
		return repoDir
	}
	vars[VarRepoDir] = repoDir
	return Resolve(t.Gist, vars)
}
