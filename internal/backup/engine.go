package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kergoth/GitHub-Backup/internal/errors"
	"github.com/kergoth/GitHub-Backup/internal/progress"
	"github.com/kergoth/GitHub-Backup/internal/urlutils"
)

// MirrorSuffix is appended to destinations in mirror mode.
const MirrorSuffix = ".git"

// metadataDir is the version-control metadata directory of a working tree.
const metadataDir = ".git"

// VCS is the external version-control tool the engine delegates transfers to.
type VCS interface {
	Clone(ctx context.Context, url, dest string, mirror, quiet bool) error
	Update(ctx context.Context, dest string, mirror, quiet bool) error
	RefreshServerInfo(ctx context.Context, dest string) error
}

// Destination is where one item is backed up to.
type Destination struct {
	Path   string
	Mirror bool
}

// Effective returns the path used for existence checks and tool invocations.
// In mirror mode the suffix is added exactly once.
func (d Destination) Effective() string {
	if d.Mirror && !strings.HasSuffix(d.Path, MirrorSuffix) {
		return d.Path + MirrorSuffix
	}
	return d.Path
}

// Status is the result of syncing one item.
type Status int

const (
	StatusCloned Status = iota + 1
	StatusUpdated
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCloned:
		return "cloned"
	case StatusUpdated:
		return "updated"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one item.
type Outcome struct {
	Item     RemoteItem
	Category Category
	Path     string
	Status   Status
	Err      error // set when Status is StatusFailed
	Duration time.Duration
}

// SyncOptions controls a single Sync call.
type SyncOptions struct {
	Quiet  bool
	Mirror bool
}

// Engine performs clone-or-update for individual items.
type Engine struct {
	vcs VCS
	out io.Writer
}

// NewEngine creates an Engine that runs transfers through vcs and writes
// progress lines to out.
func NewEngine(vcs VCS, out io.Writer) *Engine {
	if out == nil {
		out = os.Stdout
	}
	return &Engine{vcs: vcs, out: out}
}

// Sync clones item into dest, or updates it when dest already holds any
// prior state. A failed transfer is reported, never repaired: the next run
// retries the update against whatever the tool left behind.
func (e *Engine) Sync(ctx context.Context, item RemoteItem, dest Destination, opts SyncOptions) Outcome {
	if opts.Mirror {
		dest.Mirror = true
	}
	path := dest.Effective()
	outcome := Outcome{Item: item, Path: path}

	tracker := e.tracker(opts.Quiet)
	op := tracker.Start(item.DisplayName)

	var err error
	if hasPriorState(path, dest.Mirror) {
		outcome.Status = StatusUpdated
		tracker.Message("Updating existing repo at %s", path)
		err = e.vcs.Update(ctx, path, dest.Mirror, opts.Quiet)
	} else {
		outcome.Status = StatusCloned
		err = e.clone(ctx, tracker, item, path, dest.Mirror, opts.Quiet)
	}

	if err == nil && dest.Mirror {
		tracker.Message("Updating server info in %s", path)
		err = e.vcs.RefreshServerInfo(ctx, path)
	}

	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		tracker.Error(err)
		outcome.Duration = op.Duration
		return outcome
	}

	tracker.Complete()
	outcome.Duration = op.Duration
	return outcome
}

func (e *Engine) clone(ctx context.Context, tracker progress.Tracker, item RemoteItem, path string, mirror, quiet bool) error {
	if err := urlutils.ValidateTransportURL(item.TransportURL); err != nil {
		return errors.New("clone", fmt.Errorf("%s: %w", item.DisplayName, err))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("clone", fmt.Errorf("failed to create parent directory: %w", err))
	}
	tracker.Message("Cloning %s to %s", urlutils.Redact(item.TransportURL), path)
	return e.vcs.Clone(ctx, item.TransportURL, path, mirror, quiet)
}

func (e *Engine) tracker(quiet bool) progress.Tracker {
	if quiet {
		return &progress.DefaultTracker{}
	}
	return progress.NewConsoleTracker(e.out)
}

// hasPriorState reports whether path already holds a repository, complete or
// not. A bare mirror is its own metadata directory.
func hasPriorState(path string, mirror bool) bool {
	meta := filepath.Join(path, metadataDir)
	if mirror {
		meta = path
	}
	_, err := os.Stat(meta)
	return err == nil
}
