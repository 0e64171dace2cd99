package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes, per the conformance report's documented exit-code contract:
// 0 when every probe passed, 1 when any probe failed or errored, 2 when
// the driver could not be reached before probing started, 3 for any other
// host-level failure (bad config, unwritable output path).
const (
	ExitCodeSuccess      = 0
	ExitCodeProbeFailure = 1
	ExitCodeDriverError  = 2
	ExitCodeHostError    = 3
)

// ExitError carries the exit code a command wants Execute to return,
// alongside the error cobra prints to stderr.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError wraps err with an explicit process exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

var rootCmd = &cobra.Command{
	Use:   "odbccrusher",
	Short: "Probe an ODBC driver for conformance to the CLI standard",
	Long: `odbccrusher connects to an arbitrary ODBC driver, runs capability
discovery against it, then exercises a catalog of behavioral probes
covering connection handling, statement execution, catalog functions,
transactions, diagnostics, and the other surfaces the ODBC CLI standard
specifies. It reports each probe's outcome as a console or JSON report.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command, injected from main at
// build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the CLI, translating any returned ExitError into the
// matching process exit code.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "odbccrusher version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

func getExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeHostError
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
}
