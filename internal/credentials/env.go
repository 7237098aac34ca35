package credentials

import "os"

// EnvSource reads credentials from environment variables.
type EnvSource struct {
	getenv func(string) string
}

// NewEnvSource creates a new environment variable-based source
func NewEnvSource() *EnvSource {
	return &EnvSource{getenv: os.Getenv}
}

var envKeys = map[Field][]string{
	FieldUser:     {"GITHUB_USER", "LOGNAME"},
	FieldPassword: {"GITHUB_PASSWORD"},
	FieldToken:    {"GITHUB_TOKEN"},
}

// Lookup returns the first non-empty variable mapped to field
func (e *EnvSource) Lookup(field Field) (string, bool) {
	for _, key := range envKeys[field] {
		if v := e.getenv(key); v != "" {
			return v, true
		}
	}
	return "", false
}
