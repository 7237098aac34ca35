// Command github-backup backs up the repositories and gists an account owns,
// watches or stars into a local directory tree.
package main

import (
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type backupOptions struct {
	backupDir  string
	repoDir    string
	gistDir    string
	only       []string
	apiURL     string
	configPath string
	mirror     bool
	cron       bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &backupOptions{}

	cmd := &cobra.Command{
		Use:   "github-backup [username]",
		Short: "Back up GitHub repositories and gists",
		Long: `Back up every repository and gist owned, watched or starred by a GitHub
account. Existing backups are updated in place, so the command can be run
repeatedly from cron.

Credentials are read from git configuration (github.user, github.password,
github.token) or the environment (GITHUB_USER, GITHUB_PASSWORD, GITHUB_TOKEN).
The username defaults to the authenticated login.`,
		Example: `  github-backup octocat -d ~/backups/github
  github-backup octocat -d /srv/git --mirror --cron
  github-backup my-org --only public,forks
  github-backup octocat --repo-dir '{backupdir}/{repo_type}' --gist-dir '{backupdir}/gists'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var username string
			if len(args) == 1 {
				username = args[0]
			}
			return runBackup(cmd, username, opts)
		},
	}

	bindFlags(cmd.Flags(), opts)

	return cmd
}

func bindFlags(fs *pflag.FlagSet, opts *backupOptions) {
	fs.StringVarP(&opts.backupDir, "backup-dir", "d", ".", "Directory to write backups to")
	fs.StringVar(&opts.repoDir, "repo-dir", "", "Repository directory template (default \"{backupdir}/{username}/{repo_type}\")")
	fs.StringVar(&opts.gistDir, "gist-dir", "", "Gist directory template (default \"{repodir}\")")
	fs.BoolVarP(&opts.mirror, "mirror", "m", false, "Create bare mirrors instead of working trees")
	fs.BoolVarP(&opts.cron, "cron", "c", false, "Quiet mode for unattended runs")
	fs.StringSliceVar(&opts.only, "only", nil, "Only back up these categories (comma separated)")
	fs.StringVar(&opts.apiURL, "api-url", "", "GitHub Enterprise API URL")
	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: auto-detect)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
}

// setupLogging configures the global logger. Quiet runs only report problems.
func setupLogging(w io.Writer, verbose, quiet bool) {
	logger.SetOutput(w)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	switch {
	case verbose || os.Getenv("DEBUG") == "true":
		logger.SetLevel(logger.DebugLevel)
	case quiet:
		logger.SetLevel(logger.WarnLevel)
	default:
		logger.SetLevel(logger.InfoLevel)
	}
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
