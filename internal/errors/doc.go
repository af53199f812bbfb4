// Package errors provides error handling conventions for the catlog CLI.
//
// It re-exports the cockroachdb/errors constructors used across the module,
// defines sentinel errors for common failure conditions, and an [ExitError]
// that carries a process exit code and an optional suggestion.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Invalid input or configuration
//   - ExitSystem (2): I/O, network or permission failure
//
// # ExitError
//
//	err := errors.NewConfigError(errors.Wrap(err, "loading config"))
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    fmt.Fprintln(os.Stderr, exitErr.Suggestion)
//	    os.Exit(exitErr.Code)
//	}
package errors
