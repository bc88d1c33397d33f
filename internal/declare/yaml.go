package declare

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Option keys of a field.
const (
	keyInputName  = "input_name"
	keyOutputName = "output_name"
	keyOffset     = "offset"
	keyOptional   = "optional"
	keySkip       = "skip"
	keyFields     = "fields"
)

// ParseYAML parses a YAML declaration.
func ParseYAML(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	return &f, nil
}

// MarshalYAML serializes a declaration to YAML.
func MarshalYAML(f *File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal declaration: %w", err)
	}

	return data, nil
}

// --- Offset YAML methods ---

// UnmarshalYAML accepts [rows, cols].
func (o *Offset) UnmarshalYAML(node *yaml.Node) error {
	var pair []int

	err := node.Decode(&pair)
	if err != nil || len(pair) != 2 {
		return fmt.Errorf("line %d: offset must be [rows, cols]", node.Line)
	}

	*o = Offset{pair[0], pair[1]}

	return nil
}

// MarshalYAML writes [rows, cols] in flow style.
func (o Offset) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			intNode(o[0]),
			intNode(o[1]),
		},
	}, nil
}

// --- FieldList YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for FieldList.
// Each item is either:
//   - a scalar: a leaf with default options ("LoneField")
//   - a single-key map to a list: a group ({Category: [A, B]})
//   - a single-key map to a map: a node with options ({Price: {optional: true}})
//   - a single-key map to null: a leaf ("LoneField:")
func (l *FieldList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list of fields, got %s", node.Line, kindName(node))
	}

	fields := make(FieldList, 0, len(node.Content))

	for _, item := range node.Content {
		f, err := parseField(item)
		if err != nil {
			return err
		}

		fields = append(fields, f)
	}

	*l = fields

	return nil
}

func parseField(node *yaml.Node) (Field, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Field{Name: node.Value}, nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return Field{}, fmt.Errorf("line %d: expected a single-key map like {Name: [...]}", node.Line)
		}

		f := Field{Name: node.Content[0].Value}
		if f.Name == "" {
			return Field{}, fmt.Errorf("line %d: field name is empty", node.Line)
		}

		err := f.parseBody(node.Content[1])
		if err != nil {
			return Field{}, fmt.Errorf("field %q: %w", f.Name, err)
		}

		return f, nil

	default:
		return Field{}, fmt.Errorf("line %d: expected a field name or map, got %s", node.Line, kindName(node))
	}
}

func (f *Field) parseBody(body *yaml.Node) error {
	switch body.Kind {
	case yaml.ScalarNode:
		if body.ShortTag() != "!!null" {
			return fmt.Errorf("line %d: expected a list of fields or a map of options", body.Line)
		}

		return nil

	case yaml.SequenceNode:
		f.Group = true
		return f.Fields.UnmarshalYAML(body)

	case yaml.MappingNode:
		return f.parseOptions(body)

	default:
		return fmt.Errorf("line %d: unexpected %s", body.Line, kindName(body))
	}
}

func (f *Field) parseOptions(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var err error

		switch key.Value {
		case keyInputName:
			f.InputName, err = decodeString(value)
		case keyOutputName:
			f.OutputName, err = decodeString(value)
		case keyOffset:
			f.Offset = new(Offset)
			err = value.Decode(f.Offset)
		case keyOptional:
			err = value.Decode(&f.Optional)
		case keySkip:
			err = value.Decode(&f.Skip)
		case keyFields:
			f.Group = true
			err = f.Fields.UnmarshalYAML(value)
		default:
			err = fmt.Errorf("line %d: unknown option %q", key.Line, key.Value)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func decodeString(node *yaml.Node) (*string, error) {
	var s string

	err := node.Decode(&s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// MarshalYAML writes the shortest form that parses back to the same list.
func (l FieldList) MarshalYAML() (any, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}

	for _, f := range l {
		item, err := f.yamlNode()
		if err != nil {
			return nil, err
		}

		seq.Content = append(seq.Content, item)
	}

	return seq, nil
}

func (f Field) yamlNode() (*yaml.Node, error) {
	if !f.Group && !f.hasOptions() {
		return stringNode(f.Name), nil
	}

	var body *yaml.Node

	if !f.hasOptions() {
		children, err := f.Fields.MarshalYAML()
		if err != nil {
			return nil, err
		}

		body = children.(*yaml.Node)
		if f.Fields.allScalars() {
			body.Style = yaml.FlowStyle
		}
	} else {
		opts, err := f.optionsNode()
		if err != nil {
			return nil, err
		}

		body = opts
	}

	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{stringNode(f.Name), body},
	}, nil
}

func (f Field) hasOptions() bool {
	return f.InputName != nil || f.OutputName != nil || f.Offset != nil || f.Optional || f.Skip
}

func (l FieldList) allScalars() bool {
	for _, f := range l {
		if f.Group || f.hasOptions() {
			return false
		}
	}

	return true
}

func (f Field) optionsNode() (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, stringNode(key), value)
	}

	if f.InputName != nil {
		add(keyInputName, stringNode(*f.InputName))
	}

	if f.OutputName != nil {
		add(keyOutputName, stringNode(*f.OutputName))
	}

	if f.Offset != nil {
		v, err := f.Offset.MarshalYAML()
		if err != nil {
			return nil, err
		}

		add(keyOffset, v.(*yaml.Node))
	}

	if f.Optional {
		add(keyOptional, boolNode(true))
	}

	if f.Skip {
		add(keySkip, boolNode(true))
	}

	if f.Group {
		children, err := f.Fields.MarshalYAML()
		if err != nil {
			return nil, err
		}

		add(keyFields, children.(*yaml.Node))
	}

	return m, nil
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "map"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
