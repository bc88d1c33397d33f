// Package layout resolves a schema tree to concrete header cell positions.
//
// Resolution walks the tree depth first, left to right, with a running
// column cursor:
//
//   - every node adds its horizontal offset to the cursor, so a gap moves
//     the node and everything declared after it;
//   - every node adds its vertical offset to the offset inherited by its
//     descendants;
//   - a leaf takes the cursor column, then the cursor advances by one;
//   - a group's label sits at the first column of its span.
//
// Rows and columns are 0-based. Top-level nodes sit at depth 0; the root
// is a virtual container whose offset moves the whole header block.
//
// For example the schema
//
//	Category{GroupA{A, B}, GroupB{C, D}}, LoneField
//
// resolves to
//
//	row 0: Category(0..3)                LoneField(4)
//	row 1: GroupA(0..1)   GroupB(2..3)
//	row 2: A(0) B(1)      C(2) D(3)
//
// Resolution is pure. A Layout is read-only and may be shared between
// goroutines.
package layout
