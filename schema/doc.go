// Package schema provides the node model and builder for spreadsheet header
// declarations.
//
// A schema is a tree of named nodes. Groups label a header cell that spans
// their descendants; leaves label exactly one data column. Declaration order
// is significant: it is the left-to-right column order.
//
// # Declaring
//
//	root, err := schema.Build("Hardware",
//		schema.Group("Category",
//			schema.Group("GroupA", schema.Field("A"), schema.Field("B")),
//			schema.Group("GroupB", schema.Field("C"), schema.Field("D")),
//		),
//		schema.Field("LoneField").WithInputName("Lone field, pcs"),
//	)
//
// # Naming
//
// Every node has a declared name (an identifier) from which two names are
// derived unless overridden:
//
//   - input name, the header cell text: "SomeFieldName" -> "Some Field Name"
//   - output name, the record key: "SomeFieldName" -> "some_field_name"
//
// # Offsets
//
// An offset (rows, cols) displaces a node from the position gapless
// left-to-right placement would assign. Offsets are validated when the
// schema is resolved (see package layout), not when it is built.
package schema
