package cli

import (
	"bytes"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"sheet-mapper/header"
	"sheet-mapper/internal/declare"
	"sheet-mapper/internal/format"
	"sheet-mapper/layout"
)

type layoutOptions struct {
	format formatValue
	dump   bool
	goOpts format.GoOptions
	output string
}

// placementDump is the --dump view of one placement.
type placementDump struct {
	Key     string
	Row     int
	Col     int
	Span    layout.Span
	Depth   int
	Skipped bool
}

func (a *app) newLayoutCmd() *cobra.Command {
	opts := layoutOptions{format: formatValue{f: format.FormatPretty, allowCSV: true}}

	cmd := &cobra.Command{
		Use:   "layout SCHEMA",
		Short: "Print a resolved schema",
		Long: `Resolve a schema declaration and print it.

Formats: pretty, flat, typescript (ts), yaml, hcl, go, and csv, which writes
an empty header template that validates against the schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runLayout(args[0], &opts)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&opts.format, "format", "f", "output format")
	flags.BoolVar(&opts.dump, "dump", false, "dump resolved placements instead")
	flags.StringVar(&opts.goOpts.Package, "package", "", "package name for go output")
	flags.StringVar(&opts.goOpts.Func, "func", "", "constructor name for go output")
	flags.StringVarP(&opts.output, "output", "o", "", "output file instead of stdout")

	return cmd
}

func (a *app) runLayout(schemaPath string, opts *layoutOptions) error {
	root, err := declare.LoadSchema(schemaPath)
	if err != nil {
		return err
	}

	l, err := layout.Resolve(root)
	if err != nil {
		return err
	}

	var data []byte

	switch {
	case opts.dump:
		data = dumpLayout(l)
	case opts.format.f == formatCSV:
		data, err = encodeCSV(header.Template(l))
	default:
		data, err = format.Render(opts.format.f, l, opts.goOpts)
	}

	if err != nil {
		return err
	}

	return a.emit(opts.output, data)
}

func dumpLayout(l *layout.Layout) []byte {
	nodes := make([]placementDump, 0, len(l.Nodes()))
	for _, p := range l.Nodes() {
		nodes = append(nodes, placementDump{
			Key:     p.Key,
			Row:     p.Row,
			Col:     p.Col,
			Span:    p.Span,
			Depth:   p.Depth,
			Skipped: p.Skipped,
		})
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

	var buf bytes.Buffer
	cfg.Fdump(&buf, nodes)

	return buf.Bytes()
}
