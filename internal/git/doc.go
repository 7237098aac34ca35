// Package git runs the git executable on behalf of the backup engine.
//
// Client implements the three transfers the engine needs:
//
//	git clone [--mirror] [-q] <url> <dest>
//	git pull [-q]                      (working tree, run in <dest>)
//	git fetch --all [-q]               (mirror, run in <dest>)
//	git update-server-info             (mirror, run in <dest>)
//
// Arguments are always passed as an argv slice; no shell is involved, so
// repository names and URLs are never interpreted. GIT_TERMINAL_PROMPT=0 is
// set on every invocation so an unattended run fails instead of waiting for a
// password.
//
// Error Handling:
//
// A non-zero exit is returned as *errors.OperationError carrying the git
// subcommand and the directory it ran against. The engine records it as a
// failed item and moves on.
package git
