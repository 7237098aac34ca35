// Package config loads the optional YAML configuration file. Command line
// flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kergoth/GitHub-Backup/internal/backup"
)

// ErrConfigNotFound is returned by FindConfigFile when no file exists.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// BackupConfig represents the configuration of a backup run
type BackupConfig struct {
	BackupDir    string   `yaml:"backup_dir"`
	RepoTemplate string   `yaml:"repo_template"`
	GistTemplate string   `yaml:"gist_template"`
	Mirror       bool     `yaml:"mirror"`
	Cron         bool     `yaml:"cron"`
	APIURL       string   `yaml:"api_url,omitempty"`
	Only         []string `yaml:"only,omitempty"`
	// Token is used when neither git configuration nor the environment
	// provide one. It may be inline, a ${ENV_VAR} reference, or a file path.
	Token string `yaml:"token,omitempty"`
}

// DefaultConfig provides default configuration values
func DefaultConfig() *BackupConfig {
	return &BackupConfig{
		BackupDir:    ".",
		RepoTemplate: backup.DefaultRepoTemplate,
		GistTemplate: backup.DefaultGistTemplate,
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*BackupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &BackupConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.BackupDir = expandHome(cfg.BackupDir)
	cfg.Token = resolveToken(cfg.Token)
	cfg.MergeDefaults()
	return cfg, nil
}

// MergeDefaults merges default values for unset fields
func (c *BackupConfig) MergeDefaults() {
	defaults := DefaultConfig()
	if c.BackupDir == "" {
		c.BackupDir = defaults.BackupDir
	}
	if c.RepoTemplate == "" {
		c.RepoTemplate = defaults.RepoTemplate
	}
	if c.GistTemplate == "" {
		c.GistTemplate = defaults.GistTemplate
	}
}

// Validate checks if the configuration is valid
func (c *BackupConfig) Validate() error {
	if c.BackupDir == "" {
		return fmt.Errorf("backup directory cannot be empty")
	}
	if err := backup.ValidateTemplate(c.RepoTemplate); err != nil {
		return fmt.Errorf("invalid repository template: %w", err)
	}
	if err := backup.ValidateTemplate(c.GistTemplate); err != nil {
		return fmt.Errorf("invalid gist template: %w", err)
	}
	if _, err := c.Categories(); err != nil {
		return err
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			return fmt.Errorf("invalid API URL %q", c.APIURL)
		}
	}
	return nil
}

// Categories parses the category filter. Empty means every category.
func (c *BackupConfig) Categories() ([]backup.Category, error) {
	var categories []backup.Category
	for _, name := range c.Only {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category, ok := backup.ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// Templates returns the directory templates, not yet bound to a run.
func (c *BackupConfig) Templates() backup.Templates {
	return backup.Templates{Repo: c.RepoTemplate, Gist: c.GistTemplate}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or ErrConfigNotFound.
func FindConfigFile() (string, error) {
	locations := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".github-backup.yaml",
		".github-backup.yml",
		"github-backup.yaml",
		"github-backup.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from it.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		return strings.TrimSpace(string(data))
	}

	return resolved
}
