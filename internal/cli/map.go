package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sheet-mapper/extract"
	"sheet-mapper/header"
	"sheet-mapper/internal/declare"
	"sheet-mapper/mapper"
)

type mapOptions struct {
	sheets     sheetFlags
	mode       modeValue
	stop       stopValue
	maxRows    int
	start      int
	noValidate bool
	allowBlank bool
	jsonl      bool
	output     string
}

// sheetRecords are the records of one worksheet.
type sheetRecords struct {
	Sheet   string           `json:"sheet"`
	Records []extract.Record `json:"records"`
}

// recordLine is one JSON Lines entry when several sheets are mapped.
type recordLine struct {
	Sheet  string         `json:"sheet"`
	Row    int            `json:"row"`
	Record extract.Record `json:"record"`
}

func (a *app) newMapCmd() *cobra.Command {
	var opts mapOptions

	cmd := &cobra.Command{
		Use:   "map SCHEMA WORKBOOK",
		Short: "Extract data rows as JSON records",
		Long: `Extract the data rows below the header of one or more worksheets.

SCHEMA is a .yaml/.yml or .hcl declaration file. WORKBOOK is an .xlsx or
.csv file. The header is checked first: missing optional nodes are dropped,
any other mismatch exits with status 2.

With one sheet the output is a JSON array of records. With several sheets it
is an array of {"sheet", "records"} objects in the order requested. --jsonl
writes one record per line instead, wrapped with its sheet and 1-based row
number when several sheets are mapped.

Example: sheet-mapper map hardware.yaml inventory.xlsx --sheet Boards --mode flat`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMap(cmd, args[0], args[1], &opts)
		},
	}

	flags := cmd.Flags()
	opts.sheets.register(flags)
	flags.Var(&opts.mode, "mode", "record shape: nested or flat (env: SHEETMAP_MODE)")
	flags.Var(&opts.stop, "stop", "where to stop: end, blank or blank:<key,...> (env: SHEETMAP_STOP)")
	flags.IntVar(&opts.maxRows, "max-rows", 0, "maximum records per sheet, 0 for no limit (env: SHEETMAP_MAX_ROWS)")
	flags.IntVar(&opts.start, "start", 0, "first data row, 1-based; 0 starts right below the header")
	flags.BoolVar(&opts.noValidate, "no-validate", false, "skip the header check")
	flags.BoolVar(&opts.allowBlank, "allow-blank", false, "accept blank header cells")
	flags.BoolVar(&opts.jsonl, "jsonl", false, "write JSON Lines")
	flags.StringVarP(&opts.output, "output", "o", "", "output file instead of stdout")

	return cmd
}

func (a *app) runMap(cmd *cobra.Command, schemaPath, bookPath string, opts *mapOptions) error {
	if opts.start < 0 {
		return fmt.Errorf("invalid start row %d", opts.start)
	}

	root, err := declare.LoadSchema(schemaPath)
	if err != nil {
		return err
	}

	m := mapper.New(root)

	l, err := m.Resolve()
	if err != nil {
		return err
	}

	a.log.Debug("layout resolved", "schema", root.DeclaredName, "fields", len(l.Fields()),
		"height", l.Height(), "width", l.Width())

	sheets, err := loadSheets(bookPath, opts.sheets.resolve(a.cfg), opts.sheets.all)
	if err != nil {
		return err
	}

	rowOpts := a.rowOptions(cmd, opts)

	startAt := mapper.AfterHeader
	if opts.start > 0 {
		startAt = opts.start - 1
	}

	results := make([]sheetRecords, len(sheets))
	rows := make([][]int, len(sheets))

	g, ctx := errgroup.WithContext(cmd.Context())

	for i, s := range sheets {
		g.Go(func() error {
			records, at, err := a.mapSheet(ctx, m, s, startAt, rowOpts)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", s.name, err)
			}

			results[i] = sheetRecords{Sheet: s.name, Records: records}
			rows[i] = at

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		if isHeaderFailure(err) {
			a.log.Error("header validation failed", "error", err)
			return &ExitError{Code: ExitMismatch}
		}

		return err
	}

	data, err := encodeMapped(results, rows, opts.jsonl)
	if err != nil {
		return err
	}

	return a.emit(opts.output, data)
}

// rowOptions merges flags over the configured defaults.
func (a *app) rowOptions(cmd *cobra.Command, opts *mapOptions) []mapper.Option {
	flags := cmd.Flags()

	mode := a.cfg.Mode
	if flags.Changed("mode") {
		mode = extract.Mode(opts.mode)
	}

	stop := a.cfg.Stop
	if flags.Changed("stop") {
		stop.OnBlank, stop.Keys = opts.stop.policy.OnBlank, opts.stop.policy.Keys
	}

	if flags.Changed("max-rows") {
		stop.MaxRows = opts.maxRows
	}

	out := []mapper.Option{mapper.WithMode(mode), mapper.WithStop(stop)}

	if opts.noValidate {
		out = append(out, mapper.WithoutValidation())
	}

	if opts.allowBlank {
		out = append(out, mapper.WithHeaderOptions(header.AllowBlank()))
	}

	return out
}

// mapSheet extracts one worksheet. It returns the records and their
// 0-based worksheet rows.
func (a *app) mapSheet(ctx context.Context, m *mapper.Mapper, s namedSheet, startAt int,
	opts []mapper.Option,
) ([]extract.Record, []int, error) {
	it, err := m.Rows(s.ws, startAt, opts...)
	if err != nil {
		return nil, nil, err
	}

	records := []extract.Record{}

	var rows []int

	for row, rec := range it.All() {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		records = append(records, rec)
		rows = append(rows, row)
	}

	if err := it.Err(); err != nil {
		return nil, nil, err
	}

	a.log.Info("sheet mapped", "sheet", s.name, "rows", it.Count())

	return records, rows, nil
}

func encodeMapped(results []sheetRecords, rows [][]int, jsonl bool) ([]byte, error) {
	single := len(results) == 1

	switch {
	case jsonl && single:
		return encodeJSONLines(results[0].Records)
	case jsonl:
		var lines []recordLine

		for i, r := range results {
			for j, rec := range r.Records {
				lines = append(lines, recordLine{Sheet: r.Sheet, Row: rows[i][j] + 1, Record: rec})
			}
		}

		return encodeJSONLines(lines)
	case single:
		return encodeJSON(results[0].Records)
	default:
		return encodeJSON(results)
	}
}
