// Package credentials resolves the login, password and token used to talk to
// the hosting service.
//
// # Lookup Order
//
// Each field is resolved independently, first from the user's global git
// configuration and then from the environment:
//
//   github.user      GITHUB_USER, falling back to LOGNAME
//   github.password  GITHUB_PASSWORD
//   github.token     GITHUB_TOKEN
//
// A missing login is fatal. Missing password and token only restrict the run
// to what an anonymous client can see.
package credentials

import (
	"errors"
)

// Field names one credential value.
type Field string

const (
	FieldUser     Field = "user"
	FieldPassword Field = "password"
	FieldToken    Field = "token"
)

// Common errors that may be returned by credential resolution
var (
	ErrLoginNotFound = errors.New("unable to determine github username, please set github.user or export GITHUB_USER")
)

// Source looks up a single credential field.
type Source interface {
	Lookup(field Field) (string, bool)
}

// Credentials is the resolved, read-only authentication material.
type Credentials struct {
	Login    string
	Password string
	Token    string
}

// Anonymous reports whether there is nothing to authenticate with.
func (c Credentials) Anonymous() bool {
	return c.Password == "" && c.Token == ""
}

// Resolver combines sources in priority order.
type Resolver struct {
	sources []Source
}

// NewResolver creates a Resolver that consults sources in the given order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// DefaultResolver consults global git configuration, then the environment.
func DefaultResolver() *Resolver {
	return NewResolver(NewGitConfigSource(), NewEnvSource())
}

// Resolve returns the credentials, or ErrLoginNotFound when no source knows
// the login.
func (r *Resolver) Resolve() (Credentials, error) {
	creds := Credentials{
		Login:    r.lookup(FieldUser),
		Password: r.lookup(FieldPassword),
		Token:    r.lookup(FieldToken),
	}
	if creds.Login == "" {
		return creds, ErrLoginNotFound
	}
	return creds, nil
}

func (r *Resolver) lookup(field Field) string {
	for _, s := range r.sources {
		if v, ok := s.Lookup(field); ok && v != "" {
			return v
		}
	}
	return ""
}
