// Package extract projects worksheet data rows through a resolved layout
// into records.
//
// Every non-skipped leaf is read at (row, leaf column). Values pass
// through as the worksheet returns them; blank cells become nil. Records
// are nested maps keyed by output names (ModeNested) or flat maps keyed by
// dotted output keys (ModeFlat).
//
// The worksheet end always stops iteration. A StopPolicy may also stop at
// the first blank row or after a number of records.
package extract
