package declare

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Block types of an HCL declaration.
const (
	blockGroup = "group"
	blockField = "field"
	attrName   = "name"
)

// ParseHCL parses an HCL declaration. filename is used in error messages.
func ParseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	body, ok := hclFile.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, hclFile.Body)
	}

	var f File

	for name, attr := range body.Attributes {
		var err error

		switch name {
		case attrName:
			err = decodeAttr(attr, &f.Name)
		case keyOffset:
			f.Offset, err = decodeOffset(attr)
		default:
			err = attrError(attr, "unknown attribute %q", name)
		}

		if err != nil {
			return nil, err
		}
	}

	fields, err := parseBlocks(body.Blocks)
	if err != nil {
		return nil, err
	}

	f.Fields = fields

	return &f, nil
}

func parseBlocks(blocks hclsyntax.Blocks) (FieldList, error) {
	fields := make(FieldList, 0, len(blocks))

	for _, block := range blocks {
		if block.Type != blockGroup && block.Type != blockField {
			return nil, blockError(block, "unknown block type %q, expected group or field", block.Type)
		}

		if len(block.Labels) != 1 {
			return nil, blockError(block, "%s block needs exactly one name label", block.Type)
		}

		f := Field{Name: block.Labels[0], Group: block.Type == blockGroup}

		for name, attr := range block.Body.Attributes {
			var err error

			switch name {
			case keyInputName:
				f.InputName, err = decodeStringAttr(attr)
			case keyOutputName:
				f.OutputName, err = decodeStringAttr(attr)
			case keyOffset:
				f.Offset, err = decodeOffset(attr)
			case keyOptional:
				err = decodeAttr(attr, &f.Optional)
			case keySkip:
				err = decodeAttr(attr, &f.Skip)
			default:
				err = attrError(attr, "unknown attribute %q", name)
			}

			if err != nil {
				return nil, err
			}
		}

		if !f.Group && len(block.Body.Blocks) > 0 {
			return nil, blockError(block, "field %q cannot contain blocks, declare it as a group", f.Name)
		}

		if f.Group {
			children, err := parseBlocks(block.Body.Blocks)
			if err != nil {
				return nil, err
			}

			f.Fields = children
		}

		fields = append(fields, f)
	}

	return fields, nil
}

func attrValue(attr *hclsyntax.Attribute) (cty.Value, error) {
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("attribute %q: %w", attr.Name, diags)
	}

	return v, nil
}

func decodeAttr(attr *hclsyntax.Attribute, target any) error {
	v, err := attrValue(attr)
	if err != nil {
		return err
	}

	ty, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return fmt.Errorf("attribute %q: %w", attr.Name, err)
	}

	v, err = convert.Convert(v, ty)
	if err != nil {
		return attrError(attr, "invalid value for %q: %s", attr.Name, err)
	}

	err = gocty.FromCtyValue(v, target)
	if err != nil {
		return attrError(attr, "invalid value for %q: %s", attr.Name, err)
	}

	return nil
}

func decodeStringAttr(attr *hclsyntax.Attribute) (*string, error) {
	var s string

	err := decodeAttr(attr, &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func decodeOffset(attr *hclsyntax.Attribute) (*Offset, error) {
	var pair []int

	err := decodeAttr(attr, &pair)
	if err != nil || len(pair) != 2 {
		return nil, attrError(attr, "offset must be [rows, cols]")
	}

	return &Offset{pair[0], pair[1]}, nil
}

func attrError(attr *hclsyntax.Attribute, format string, args ...any) error {
	return rangeError(attr.SrcRange, format, args...)
}

func blockError(block *hclsyntax.Block, format string, args ...any) error {
	return rangeError(block.DefRange(), format, args...)
}

func rangeError(rng hcl.Range, format string, args ...any) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid declaration",
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	}}
}
