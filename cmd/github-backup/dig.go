package main

import (
	"context"
	"io"

	"go.uber.org/dig"

	"github.com/kergoth/GitHub-Backup/internal/backup"
	"github.com/kergoth/GitHub-Backup/internal/config"
	"github.com/kergoth/GitHub-Backup/internal/credentials"
	"github.com/kergoth/GitHub-Backup/internal/git"
	"github.com/kergoth/GitHub-Backup/internal/github"
)

type streams struct {
	out    io.Writer
	errOut io.Writer
}

// newLister is a variable so it can be replaced in tests
var newLister = func(cfg *config.BackupConfig, creds credentials.Credentials) (lister, error) {
	client, err := github.NewClient(context.Background(), github.Options{
		Credentials: creds,
		APIURL:      cfg.APIURL,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newVCS is a variable so it can be replaced in tests
var newVCS = func(s streams) (backup.VCS, error) {
	client := git.NewClient()
	client.Stdout = s.out
	client.Stderr = s.errOut
	if err := client.CheckInstalled(); err != nil {
		return nil, err
	}
	return client, nil
}

func newEngine(vcs backup.VCS, s streams) *backup.Engine {
	return backup.NewEngine(vcs, s.out)
}

func newOrchestrator(engine *backup.Engine) *backup.Orchestrator {
	return backup.NewOrchestrator(engine)
}

func newApp(cfg *config.BackupConfig, l lister, o *backup.Orchestrator, s streams) *app {
	return &app{cfg: cfg, lister: l, orchestrator: o, out: s.out}
}

func registerProviders(container *dig.Container, cfg *config.BackupConfig, creds credentials.Credentials, out, errOut io.Writer) error {
	providers := []interface{}{
		func() *config.BackupConfig { return cfg },
		func() credentials.Credentials { return creds },
		func() streams { return streams{out: out, errOut: errOut} },
		newLister,
		newVCS,
		newEngine,
		newOrchestrator,
		newApp,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}

func injectApp(cfg *config.BackupConfig, creds credentials.Credentials, out, errOut io.Writer) (*app, error) {
	container := dig.New()

	if err := registerProviders(container, cfg, creds, out, errOut); err != nil {
		return nil, err
	}

	var a *app
	if err := container.Invoke(func(ai *app) {
		a = ai
	}); err != nil {
		return nil, dig.RootCause(err)
	}

	return a, nil
}
