package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sheet-mapper/header"
	"sheet-mapper/internal/declare"
	"sheet-mapper/internal/diagnostic"
	"sheet-mapper/mapper"
)

type validateOptions struct {
	sheets     sheetFlags
	allowBlank bool
	strict     bool
}

func (a *app) newValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate SCHEMA WORKBOOK",
		Short: "Check worksheet headers against a schema",
		Long: `Check the header cells of each worksheet against the schema.

Prints one line per sheet, followed by any diagnostics. Missing optional
nodes are reported and dropped unless --strict is given. Exits with status 2
if any sheet fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0], args[1], &opts)
		},
	}

	flags := cmd.Flags()
	opts.sheets.register(flags)
	flags.BoolVar(&opts.allowBlank, "allow-blank", false, "accept blank header cells")
	flags.BoolVar(&opts.strict, "strict", false, "treat missing optional nodes as mismatches")

	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, schemaPath, bookPath string, opts *validateOptions) error {
	root, err := declare.LoadSchema(schemaPath)
	if err != nil {
		return err
	}

	m := mapper.New(root)

	_, err = m.Resolve()
	if err != nil {
		return err
	}

	sheets, err := loadSheets(bookPath, opts.sheets.resolve(a.cfg), opts.sheets.all)
	if err != nil {
		return err
	}

	var hopts []header.Option
	if opts.allowBlank {
		hopts = append(hopts, header.AllowBlank())
	}

	out := cmd.OutOrStdout()

	var failures diagnostic.Diagnostics

	for _, s := range sheets {
		if opts.strict {
			err = m.Validate(s.ws, hopts...)
		} else {
			var b *header.Binding

			b, err = m.Bind(s.ws, hopts...)
			if err == nil {
				for _, d := range b.Diagnostics.All() {
					fmt.Fprintf(out, "%s: %s: %s\n", s.name, d.Severity, d)
				}
			}
		}

		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: ok\n", s.name)
		case isHeaderFailure(err):
			var sheetDiags diagnostic.Diagnostics
			addHeaderFailure(&sheetDiags, err)

			for _, d := range sheetDiags.Errors {
				fmt.Fprintf(out, "%s: %s: %s\n", s.name, d.Severity, d)
			}

			failures.Merge(sheetDiags)
		default:
			return fmt.Errorf("sheet %q: %w", s.name, err)
		}
	}

	if failures.HasErrors() {
		a.log.Error("header validation failed", "sheets", len(failures.Errors), "error", failures.Error())
		return &ExitError{Code: ExitMismatch}
	}

	return nil
}

// addHeaderFailure records a header failure returned by Validate or Bind.
func addHeaderFailure(d *diagnostic.Diagnostics, err error) {
	var mismatch *header.HeaderMismatchError
	if errors.As(err, &mismatch) {
		d.AddError(diagnostic.CodeHeaderMismatch,
			fmt.Sprintf("expected %q, found %q", mismatch.Expected, mismatch.Found),
			mismatch.Cell(), mismatch.Key)

		return
	}

	d.AddError(diagnostic.CodeNothingLeft, err.Error(), "", "")
}
