package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kergoth/GitHub-Backup/internal/errors"
	logger "github.com/sirupsen/logrus"
)

const defaultBinary = "git"

// Client invokes the git executable.
type Client struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// NewClient creates a Client that runs git from PATH and passes its output
// through to the process's own stdout and stderr.
func NewClient() *Client {
	return &Client{
		Binary: defaultBinary,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// CheckInstalled returns an error when the git executable cannot be found.
func (c *Client) CheckInstalled() error {
	if _, err := exec.LookPath(c.binary()); err != nil {
		return errors.New("lookup", fmt.Errorf("%s executable not found: %w", c.binary(), err))
	}
	return nil
}

// Clone clones url into dest. dest must not exist yet.
func (c *Client) Clone(ctx context.Context, url, dest string, mirror, quiet bool) error {
	args := []string{"clone"}
	if mirror {
		args = append(args, "--mirror")
	}
	if quiet {
		args = append(args, "-q")
	}
	// "--" keeps url and dest from ever being parsed as options
	args = append(args, "--", url, dest)
	if output, err := c.run(ctx, "", args...); err != nil {
		return errors.NewInDir("clone", dest, output, err)
	}
	return nil
}

// Update brings an existing clone at dest up to date: a pull for a working
// tree, a fetch of every remote for a mirror.
func (c *Client) Update(ctx context.Context, dest string, mirror, quiet bool) error {
	op, args := "pull", []string{"pull"}
	if mirror {
		op, args = "fetch", []string{"fetch", "--all"}
	}
	if quiet {
		args = append(args, "-q")
	}
	if output, err := c.run(ctx, dest, args...); err != nil {
		return errors.NewInDir(op, dest, output, err)
	}
	return nil
}

// RefreshServerInfo regenerates the auxiliary files that let a mirror be
// served over dumb HTTP.
func (c *Client) RefreshServerInfo(ctx context.Context, dest string) error {
	if output, err := c.run(ctx, dest, "update-server-info"); err != nil {
		return errors.NewInDir("update-server-info", dest, output, err)
	}
	return nil
}

// run executes git and returns the tail of its stderr alongside any error.
func (c *Client) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	logger.WithField("dir", dir).Debugf("Running %s %v", c.binary(), args)
	return runGitCommand(ctx, command{
		binary: c.binary(),
		dir:    dir,
		stdout: c.Stdout,
		stderr: c.Stderr,
		args:   args,
	})
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return defaultBinary
	}
	return c.Binary
}

type command struct {
	binary string
	dir    string
	stdout io.Writer
	stderr io.Writer
	args   []string
}

// runGitCommand is a variable so it can be mocked in tests
var runGitCommand = func(ctx context.Context, c command) ([]byte, error) {
	tail := newTailBuffer(maxErrorOutput)
	stderr := io.Writer(tail)
	if c.stderr != nil {
		stderr = io.MultiWriter(c.stderr, tail)
	}

	cmd := exec.CommandContext(ctx, c.binary, c.args...)
	cmd.Dir = c.dir
	cmd.Stdout = c.stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		return tail.Bytes(), fmt.Errorf("git %s failed: %w", c.args[0], err)
	}
	return nil, nil
}
