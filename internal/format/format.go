// Package format renders schemas and resolved layouts as text.
//
// Pretty and Flat describe a resolved layout for humans. TypeScript emits
// type definitions for extracted records. YAML and HCL emit declaration
// files that load back through the declare package. Go emits builder source.
package format

import (
	"fmt"
	"slices"
	"strings"

	"sheet-mapper/internal/declare"
	"sheet-mapper/layout"
)

// Format selects a renderer.
type Format string

// Supported formats.
const (
	FormatPretty     Format = "pretty"
	FormatFlat       Format = "flat"
	FormatTypeScript Format = "typescript"
	FormatYAML       Format = "yaml"
	FormatHCL        Format = "hcl"
	FormatGo         Format = "go"
)

// Formats lists every supported format.
var Formats = []Format{FormatPretty, FormatFlat, FormatTypeScript, FormatYAML, FormatHCL, FormatGo}

// ParseFormat parses a format name, case-insensitively. "ts" is accepted
// for TypeScript and "yml" for YAML.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	switch name {
	case "ts":
		return FormatTypeScript, nil
	case "yml":
		return FormatYAML, nil
	}

	if f := Format(name); slices.Contains(Formats, f) {
		return f, nil
	}

	return "", fmt.Errorf("unknown format %q", s)
}

// Render renders l in format f. opts apply to FormatGo only.
func Render(f Format, l *layout.Layout, opts GoOptions) ([]byte, error) {
	switch f {
	case FormatPretty:
		return []byte(Pretty(l)), nil
	case FormatFlat:
		return []byte(Flat(l)), nil
	case FormatTypeScript:
		return []byte(TypeScript(l.Root())), nil
	case FormatYAML:
		return declare.MarshalYAML(declare.FromSchema(l.Root()))
	case FormatHCL:
		return declare.MarshalHCL(declare.FromSchema(l.Root())), nil
	case FormatGo:
		return Go(l.Root(), opts)
	default:
		return nil, fmt.Errorf("unknown format %q", string(f))
	}
}
