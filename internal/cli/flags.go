package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"sheet-mapper/extract"
	"sheet-mapper/internal/config"
	"sheet-mapper/internal/format"
	"sheet-mapper/schema"
	"sheet-mapper/sheet"
)

// modeValue is a pflag.Value for extract.Mode.
type modeValue extract.Mode

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) Type() string { return "mode" }

func (v *modeValue) String() string {
	return strings.ToLower(strings.TrimPrefix(extract.Mode(*v).String(), "Mode"))
}

func (v *modeValue) Set(s string) error {
	m, err := extract.ParseMode(s)
	if err != nil {
		return err
	}

	*v = modeValue(m)

	return nil
}

// stopValue is a pflag.Value for extract.StopPolicy without MaxRows.
type stopValue struct {
	raw    string
	policy extract.StopPolicy
}

var _ pflag.Value = (*stopValue)(nil)

func (v *stopValue) String() string { return v.raw }
func (v *stopValue) Type() string   { return "policy" }

func (v *stopValue) Set(s string) error {
	p, err := config.ParseStop(s)
	if err != nil {
		return err
	}

	v.raw, v.policy = s, p

	return nil
}

// formatValue is a pflag.Value for format.Format. It also accepts
// formatCSV where the command allows it.
type formatValue struct {
	f        format.Format
	allowCSV bool
}

// formatCSV writes the header template as CSV.
const formatCSV format.Format = "csv"

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string { return string(v.f) }
func (v *formatValue) Type() string   { return "format" }

func (v *formatValue) Set(s string) error {
	if v.allowCSV && strings.EqualFold(strings.TrimSpace(s), string(formatCSV)) {
		v.f = formatCSV
		return nil
	}

	f, err := format.ParseFormat(s)
	if err != nil {
		return err
	}

	v.f = f

	return nil
}

// cellValue is a pflag.Value for an A1 cell reference.
type cellValue struct {
	offset schema.Offset
}

var _ pflag.Value = (*cellValue)(nil)

func (v *cellValue) String() string { return sheet.CellName(v.offset.Rows, v.offset.Cols) }
func (v *cellValue) Type() string   { return "cell" }

func (v *cellValue) Set(s string) error {
	row, col, err := sheet.ParseCellName(strings.TrimSpace(s))
	if err != nil {
		return err
	}

	v.offset = schema.Offset{Rows: row, Cols: col}

	return nil
}

// sheetFlags are the worksheet selection flags shared by map and validate.
type sheetFlags struct {
	names []string
	all   bool
}

func (s *sheetFlags) register(flags *pflag.FlagSet) {
	flags.StringSliceVar(&s.names, "sheet", nil, "worksheet name, repeatable; defaults to the first sheet (env: SHEETMAP_SHEET)")
	flags.BoolVar(&s.all, "all-sheets", false, "use every worksheet of the workbook")
}

// resolve returns the requested sheet names, falling back to the configured one.
func (s *sheetFlags) resolve(cfg *config.Config) []string {
	if len(s.names) > 0 {
		return s.names
	}

	return []string{cfg.Sheet}
}
