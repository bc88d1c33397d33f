// Package cli implements the sheet-mapper command line.
//
// Commands:
//   - map: extract data rows of one or more worksheets as JSON records
//   - validate: check worksheet headers against a schema
//   - layout: print a resolved schema in one of several formats
//   - infer: derive a schema declaration from a worksheet header
//   - version: print the build version
//
// Defaults come from SHEETMAP_* environment variables (see internal/config);
// flags override them. Logs go to stderr.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"sheet-mapper/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitMismatch = 2
)

// ExitError signals a non-zero exit code without printing an error message.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return "" }

const (
	flagEnvFile   = "env-file"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// app is the state shared by all commands of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	envFiles  []string
	logLevel  string
	logFormat string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd returns the root command writing results to out and logs to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:               "sheet-mapper",
		Short:             "Map spreadsheet rows to records through a declared header schema",
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, flagEnvFile, nil, "env file(s) to load instead of ./.env")
	flags.StringVar(&a.logLevel, flagLogLevel, "info", "log level: debug, info, warn, error (env: SHEETMAP_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, flagLogFormat, "text", "log format: text or json (env: SHEETMAP_LOG_FORMAT)")

	cmd.AddCommand(
		a.newMapCmd(),
		a.newValidateCmd(),
		a.newLayoutCmd(),
		a.newInferCmd(),
		a.newVersionCmd(),
	)

	return cmd
}

// Execute runs the command line with args.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	cmd := NewRootCmd(out, errOut)
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

// setup loads the configuration, applies persistent flags and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed(flagLogLevel) {
		cfg.LogLevel = a.logLevel
	}

	if flags.Changed(flagLogFormat) {
		cfg.LogFormat = a.logFormat
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = newLogger(cfg.LogLevel, cfg.LogFormat, a.errOut)

	return nil
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sheet-mapper %s\n", Version)
			return err
		},
	}
}
