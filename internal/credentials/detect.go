package credentials

import "strings"

// TokenKind describes a token by its prefix, for diagnostics. Unknown formats
// (including classic 40-character tokens) yield an empty string.
func TokenKind(token string) string {
	switch {
	case strings.HasPrefix(token, "ghp_"):
		return "personal access token"
	case strings.HasPrefix(token, "github_pat_"):
		return "fine-grained personal access token"
	case strings.HasPrefix(token, "gho_"):
		return "OAuth token"
	case strings.HasPrefix(token, "ghs_"):
		return "app installation token"
	case strings.HasPrefix(token, "glpat-"):
		return "GitLab token"
	default:
		return ""
	}
}
