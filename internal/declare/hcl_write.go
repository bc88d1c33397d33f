package declare

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// MarshalHCL serializes a declaration to HCL.
func MarshalHCL(f *File) []byte {
	out := hclwrite.NewEmptyFile()
	body := out.Body()

	body.SetAttributeValue(attrName, cty.StringVal(f.Name))

	if f.Offset != nil {
		body.SetAttributeValue(keyOffset, offsetValue(*f.Offset))
	}

	writeBlocks(body, f.Fields)

	return out.Bytes()
}

func writeBlocks(body *hclwrite.Body, fields FieldList) {
	for _, f := range fields {
		body.AppendNewline()

		kind := blockField
		if f.Group {
			kind = blockGroup
		}

		block := body.AppendNewBlock(kind, []string{f.Name})
		inner := block.Body()

		if f.InputName != nil {
			inner.SetAttributeValue(keyInputName, cty.StringVal(*f.InputName))
		}

		if f.OutputName != nil {
			inner.SetAttributeValue(keyOutputName, cty.StringVal(*f.OutputName))
		}

		if f.Offset != nil {
			inner.SetAttributeValue(keyOffset, offsetValue(*f.Offset))
		}

		if f.Optional {
			inner.SetAttributeValue(keyOptional, cty.True)
		}

		if f.Skip {
			inner.SetAttributeValue(keySkip, cty.True)
		}

		if f.Group {
			writeBlocks(inner, f.Fields)
		}
	}
}

func offsetValue(o Offset) cty.Value {
	return cty.TupleVal([]cty.Value{cty.NumberIntVal(int64(o[0])), cty.NumberIntVal(int64(o[1]))})
}
