// Package cli implements the mangekyou command-line interface. Each
// command opens the watchlist, runs one engine operation to completion,
// and closes it again.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/mangekyou/internal/logging"
	"github.com/mesh-intelligence/mangekyou/internal/paths"
	"github.com/mesh-intelligence/mangekyou/pkg/mangekyou"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	logFormat string
	jsonMode  bool
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	flags     rootFlags
	config    *viper.Viper
	configDir string
	logger    *slog.Logger

	// writeClipboard is swapped out in tests.
	writeClipboard func(string) error
}

// NewRootCmd creates the top-level "mangekyou" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{writeClipboard: clipboard.WriteAll})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "mangekyou",
		Short:   "Track the anime, movies, dramas, and games you have watched",
		Long:    "Mangekyou keeps a personal watchlist on this machine.\nAdd titles with notes, search and filter them, and export or import the list.",
		Version: mangekyou.Version,
		// Errors are printed once by Execute with the matching exit code.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json, sqlite, memory (default: json)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: error)")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: console, json (default: console)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCopyCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newClearCmd(a),
	)

	return root
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	if err := bindFlags(v, cmd); err != nil {
		return sysError(err)
	}

	logger, err := logging.New(logging.Options{
		Level:  v.GetString(cfgKeyLogLevel),
		Format: v.GetString(cfgKeyLogFormat),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return userError(err)
	}

	a.config = v
	a.configDir = configDir
	a.logger = logger
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mangekyou:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// cliError attaches an exit code to an error.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// userError marks err as caused by bad input.
func userError(err error) error {
	return &cliError{code: exitUserError, err: err}
}

// sysError marks err as a storage or environment failure.
func sysError(err error) error {
	return &cliError{code: exitSysError, err: err}
}

// exitCode maps an error returned by a command to a process exit code.
// Errors not tagged by userError or sysError come from cobra's own
// argument and flag parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
