package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/kergoth/GitHub-Backup/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	dir  string
	args []string
}

func mockRunGitCommand(calls *[]recordedCall, output string, fail error) func(context.Context, command) ([]byte, error) {
	return func(_ context.Context, c command) ([]byte, error) {
		*calls = append(*calls, recordedCall{dir: c.dir, args: c.args})
		if fail != nil {
			return []byte(output), fail
		}
		return nil, nil
	}
}

func TestClient_Commands(t *testing.T) {
	originalRunGitCommand := runGitCommand
	defer func() {
		runGitCommand = originalRunGitCommand
	}()

	tests := []struct {
		name     string
		call     func(c *Client) error
		wantDir  string
		wantArgs []string
	}{
		{
			name: "clone",
			call: func(c *Client) error {
				return c.Clone(context.Background(), "https://github.com/o/r.git", "/b/public/r", false, false)
			},
			wantArgs: []string{"clone", "--", "https://github.com/o/r.git", "/b/public/r"},
		},
		{
			name: "quiet mirror clone",
			call: func(c *Client) error {
				return c.Clone(context.Background(), "https://github.com/o/r.git", "/b/public/r.git", true, true)
			},
			wantArgs: []string{"clone", "--mirror", "-q", "--", "https://github.com/o/r.git", "/b/public/r.git"},
		},
		{
			name: "pull",
			call: func(c *Client) error {
				return c.Update(context.Background(), "/b/public/r", false, false)
			},
			wantDir:  "/b/public/r",
			wantArgs: []string{"pull"},
		},
		{
			name: "quiet mirror fetch",
			call: func(c *Client) error {
				return c.Update(context.Background(), "/b/public/r.git", true, true)
			},
			wantDir:  "/b/public/r.git",
			wantArgs: []string{"fetch", "--all", "-q"},
		},
		{
			name: "update-server-info",
			call: func(c *Client) error {
				return c.RefreshServerInfo(context.Background(), "/b/public/r.git")
			},
			wantDir:  "/b/public/r.git",
			wantArgs: []string{"update-server-info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []recordedCall
			runGitCommand = mockRunGitCommand(&calls, "", nil)

			require.NoError(t, tt.call(NewClient()))
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantDir, calls[0].dir)
			assert.Equal(t, tt.wantArgs, calls[0].args)
		})
	}
}

func TestClient_Failure(t *testing.T) {
	originalRunGitCommand := runGitCommand
	defer func() {
		runGitCommand = originalRunGitCommand
	}()

	exitErr := stderrors.New("exit status 128")
	var calls []recordedCall
	runGitCommand = mockRunGitCommand(&calls, "fatal: not a git repository\n", exitErr)

	err := NewClient().Update(context.Background(), "/b/public/r", false, true)
	require.Error(t, err)

	var opErr *errors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "pull", opErr.Op)
	assert.Equal(t, "/b/public/r", opErr.Dir)
	assert.Equal(t, "fatal: not a git repository", opErr.Output)
	assert.ErrorIs(t, err, exitErr)
	assert.Contains(t, err.Error(), "(fatal: not a git repository)")
}

func TestTailBuffer(t *testing.T) {
	buf := newTailBuffer(8)

	n, err := buf.Write([]byte("0123"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "0123", string(buf.Bytes()))

	n, err = buf.Write([]byte("456789ab"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "456789ab", string(buf.Bytes()))

	_, _ = buf.Write([]byte("cd"))
	assert.Equal(t, "6789abcd", string(buf.Bytes()))
}

func TestClient_CheckInstalled(t *testing.T) {
	c := &Client{Binary: "definitely-not-a-real-git-binary"}
	assert.Error(t, c.CheckInstalled())
}

// TestClient_RealGit exercises the full clone, update and mirror cycle against
// a local repository.
func TestClient_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	root := t.TempDir()
	src := filepath.Join(root, "src")
	gitInit(t, src)

	c := &Client{Binary: "git"}
	ctx := context.Background()

	work := filepath.Join(root, "work", "src")
	require.NoError(t, c.Clone(ctx, "file://"+src, work, false, true))
	assert.DirExists(t, filepath.Join(work, ".git"))
	require.NoError(t, c.Update(ctx, work, false, true))

	mirror := filepath.Join(root, "mirror", "src.git")
	require.NoError(t, c.Clone(ctx, "file://"+src, mirror, true, true))
	require.NoError(t, c.Update(ctx, mirror, true, true))
	require.NoError(t, c.RefreshServerInfo(ctx, mirror))
	assert.FileExists(t, filepath.Join(mirror, "info", "refs"))

	err := c.Update(ctx, filepath.Join(root, "missing"), false, true)
	assert.Error(t, err)

	var stderr bytes.Buffer
	c.Stderr = &stderr
	err = c.Clone(ctx, "file://"+filepath.Join(root, "nonexistent"), filepath.Join(root, "gone"), false, true)
	var opErr *errors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Contains(t, opErr.Output, "fatal:")
	assert.Contains(t, stderr.String(), "fatal:", "stderr still reaches the caller")
}

func gitInit(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hello\n"), 0644))

	for _, args := range [][]string{
		{"init", "-q"},
		{"add", "README"},
		{"-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-q", "-m", "initial"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
}
