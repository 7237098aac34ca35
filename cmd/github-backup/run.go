package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kergoth/GitHub-Backup/internal/backup"
	"github.com/kergoth/GitHub-Backup/internal/config"
	"github.com/kergoth/GitHub-Backup/internal/credentials"
	"github.com/kergoth/GitHub-Backup/internal/progress"
)

// lister fetches everything a run needs from the hosting service.
type lister interface {
	AuthenticatedUser(ctx context.Context) (string, error)
	FetchListing(ctx context.Context, target, authenticatedUser string) (backup.Listing, error)
}

type app struct {
	cfg          *config.BackupConfig
	lister       lister
	orchestrator *backup.Orchestrator
	out          io.Writer
}

func runBackup(cmd *cobra.Command, username string, opts *backupOptions) error {
	setupLogging(cmd.ErrOrStderr(), opts.verbose, opts.cron)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// cron may also come from the config file
	setupLogging(cmd.ErrOrStderr(), opts.verbose, cfg.Cron)

	sources := []credentials.Source{credentials.NewGitConfigSource(), credentials.NewEnvSource()}
	if cfg.Token != "" {
		sources = append(sources, credentials.NewMemorySource(map[credentials.Field]string{
			credentials.FieldToken: cfg.Token,
		}))
	}
	creds, err := credentials.NewResolver(sources...).Resolve()
	if err != nil {
		return err
	}
	switch kind := credentials.TokenKind(creds.Token); {
	case kind == "GitLab token":
		logger.Warn("The configured token looks like a GitLab token and will likely be rejected")
	case kind != "":
		logger.Debugf("Authenticating as %s (%s)", creds.Login, kind)
	}
	if creds.Anonymous() {
		logger.Warn("Unable to determine github password. To access private repositories, set github.password or export GITHUB_PASSWORD")
	}
	if username == "" {
		username = creds.Login
	}

	a, err := injectApp(cfg, creds, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return a.run(cmd.Context(), username)
}

func loadConfig(path string) (*config.BackupConfig, error) {
	if path == "" {
		found, err := config.FindConfigFile()
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}
	logger.Debugf("Loading configuration from %s", path)
	return config.LoadConfig(path)
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.BackupConfig, opts *backupOptions) {
	flags := cmd.Flags()
	if flags.Changed("backup-dir") {
		cfg.BackupDir = opts.backupDir
	}
	if flags.Changed("repo-dir") {
		cfg.RepoTemplate = opts.repoDir
	}
	if flags.Changed("gist-dir") {
		cfg.GistTemplate = opts.gistDir
	}
	if flags.Changed("mirror") {
		cfg.Mirror = opts.mirror
	}
	if flags.Changed("cron") {
		cfg.Cron = opts.cron
	}
	if flags.Changed("only") {
		cfg.Only = opts.only
	}
	if flags.Changed("api-url") {
		cfg.APIURL = opts.apiURL
	}
}

func (a *app) run(ctx context.Context, username string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	quiet := a.cfg.Cron

	authUser, err := a.lister.AuthenticatedUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	listing, err := a.lister.FetchListing(ctx, username, authUser)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", username, err)
	}

	set := backup.Classify(listing, authUser, username)
	templates := a.cfg.Templates().Bind(a.cfg.BackupDir, username)
	categories, err := a.cfg.Categories()
	if err != nil {
		return err
	}
	runOpts := backup.RunOptions{
		Quiet:      quiet,
		Mirror:     a.cfg.Mirror,
		Categories: categories,
	}

	if err := backup.CheckCollisions(backup.Plan(set, templates, runOpts)); err != nil {
		return err
	}

	report := a.orchestrator.Run(ctx, set, templates, runOpts)
	if !quiet {
		progress.PrintSummary(a.out, summarize(report))
	}

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d items failed to back up", failed, len(report.Outcomes))
	}
	return nil
}

func summarize(r backup.Report) progress.Summary {
	return progress.Summary{
		Cloned:   r.Cloned(),
		Updated:  r.Updated(),
		Failed:   r.Failed(),
		Duration: r.Duration,
		Failures: lo.Map(r.Failures(), func(o backup.Outcome, _ int) progress.Failure {
			return progress.Failure{Name: o.Item.DisplayName, Err: o.Err, Duration: o.Duration}
		}),
	}
}
