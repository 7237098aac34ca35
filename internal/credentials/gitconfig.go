package credentials

import (
	"sync"

	"github.com/go-git/go-git/v5/config"
	logger "github.com/sirupsen/logrus"
)

// Section is the git configuration section holding the credentials.
const Section = "github"

// GitConfigSource reads credentials from the user's global git configuration
// (~/.gitconfig or $XDG_CONFIG_HOME/git/config). The file is read once, on
// first lookup.
type GitConfigSource struct {
	scope config.Scope

	once   sync.Once
	values map[Field]string
}

// NewGitConfigSource creates a source backed by the global git configuration
func NewGitConfigSource() *GitConfigSource {
	return &GitConfigSource{scope: config.GlobalScope}
}

// Lookup returns github.<field> from git configuration
func (g *GitConfigSource) Lookup(field Field) (string, bool) {
	g.once.Do(g.load)
	v, ok := g.values[field]
	return v, ok && v != ""
}

func (g *GitConfigSource) load() {
	g.values = make(map[Field]string)

	cfg, err := config.LoadConfig(g.scope)
	if err != nil {
		logger.Debugf("Unable to read git configuration: %v", err)
		return
	}
	if !cfg.Raw.HasSection(Section) {
		return
	}
	section := cfg.Raw.Section(Section)
	for _, field := range []Field{FieldUser, FieldPassword, FieldToken} {
		if section.HasOption(string(field)) {
			g.values[field] = section.Option(string(field))
		}
	}
}
