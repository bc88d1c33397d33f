// Package declare loads schema declarations from YAML and HCL files.
//
// Both formats describe the same tree. Field order in the file is column
// order in the worksheet.
//
// # YAML
//
//	name: Hardware
//	offset: [1, 0]          # optional (rows, cols) of the header block
//	fields:
//	  - Category:           # a group: single-key map to a list of children
//	      - GroupA: [A, B]
//	      - GroupB: [C, D]
//	  - LoneField           # a leaf: plain scalar
//	  - Price:              # options: single-key map to a map
//	      input_name: "Unit price, $"
//	      output_name: unit_price
//	      offset: [0, 1]
//	      optional: true
//	  - Internal:
//	      skip: true
//	      fields: [X, Y]    # a group with options
//
// # HCL
//
//	name   = "Hardware"
//	offset = [1, 0]
//
//	group "Category" {
//	  group "GroupA" {
//	    field "A" {}
//	    field "B" {}
//	  }
//	}
//
//	field "LoneField" {
//	  input_name = "Lone field"
//	  optional   = true
//	}
//
// # Declared names
//
// Unless overridden, the header text (input_name) and the record key
// (output_name) of a node derive from its declared name; see
// schema.HeaderName and schema.OutputKey.
package declare
