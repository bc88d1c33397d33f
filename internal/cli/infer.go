package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sheet-mapper/internal/format"
	"sheet-mapper/internal/infer"
	"sheet-mapper/layout"
	"sheet-mapper/schema"
)

type inferOptions struct {
	sheet  string
	name   string
	height int
	width  int
	origin cellValue
	format formatValue
	goOpts format.GoOptions
	output string
}

func (a *app) newInferCmd() *cobra.Command {
	opts := inferOptions{height: 1, format: formatValue{f: format.FormatYAML}}

	cmd := &cobra.Command{
		Use:   "infer WORKBOOK",
		Short: "Derive a schema declaration from a worksheet header",
		Long: `Read the header block of a worksheet and print a schema that matches it.

The block starts at --origin and is --height rows tall. Without --width,
columns are read until the first blank one. Merged header cells become
groups, blank columns become offsets.

Example: sheet-mapper infer inventory.xlsx --sheet Boards --height 3 --name Board`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runInfer(args[0], &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet name; defaults to the first sheet (env: SHEETMAP_SHEET)")
	flags.StringVar(&opts.name, "name", "", "root name; defaults to one derived from the sheet name")
	flags.IntVar(&opts.height, "height", opts.height, "number of header rows")
	flags.IntVar(&opts.width, "width", 0, "number of header columns, 0 to stop at the first blank column")
	flags.Var(&opts.origin, "origin", "top-left header cell, e.g. B3")
	flags.VarP(&opts.format, "format", "f", "output format: yaml, hcl, go, typescript, pretty or flat")
	flags.StringVar(&opts.goOpts.Package, "package", "", "package name for go output")
	flags.StringVar(&opts.goOpts.Func, "func", "", "constructor name for go output")
	flags.StringVarP(&opts.output, "output", "o", "", "output file instead of stdout")

	return cmd
}

func (a *app) runInfer(bookPath string, opts *inferOptions) error {
	name := opts.sheet
	if name == "" {
		name = a.cfg.Sheet
	}

	sheets, err := loadSheets(bookPath, []string{name}, false)
	if err != nil {
		return err
	}

	s := sheets[0]

	rootName := opts.name
	if rootName == "" {
		rootName = schema.TypeName(s.name)
	}

	if rootName == "" {
		rootName = "Sheet"
	}

	res, err := infer.Infer(s.ws, infer.Options{
		Name:   rootName,
		Height: opts.height,
		Width:  opts.width,
		Origin: opts.origin.offset,
	})
	if err != nil {
		return fmt.Errorf("sheet %q: %w", s.name, err)
	}

	for _, d := range res.Diagnostics.Warnings {
		a.log.Warn(d.Message, "code", d.Code, "cell", d.Cell)
	}

	for _, d := range res.Diagnostics.Infos {
		a.log.Info(d.Message, "code", d.Code, "cell", d.Cell)
	}

	l, err := layout.Resolve(res.Root)
	if err != nil {
		return fmt.Errorf("inferred schema does not resolve: %w", err)
	}

	a.log.Info("schema inferred", "sheet", s.name, "fields", len(l.Fields()))

	data, err := format.Render(opts.format.f, l, opts.goOpts)
	if err != nil {
		return err
	}

	return a.emit(opts.output, data)
}
