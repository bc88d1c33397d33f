// Package sheet provides the worksheet abstraction the mapper reads from,
// with in-memory, xlsx and CSV implementations.
//
// Coordinates are 0-based (row, col). Cells outside the used range are
// blank and read as nil.
//
// xlsx workbooks are read with excelize. A sheet is loaded eagerly with raw
// cell values and its merged ranges are kept on the Grid. Cell reads what is
// stored, so only the top-left cell of a merged range holds a value.
// HeaderCell reads every cell of a merged range as its top-left value, so a
// label spanning several columns is visible at each of them.
package sheet
