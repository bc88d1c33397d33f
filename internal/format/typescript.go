package format

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"sheet-mapper/internal/common"
	"sheet-mapper/schema"
)

const tsPreamble = "// Code generated by sheet-mapper. DO NOT EDIT.\n"

var tsIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TypeScript renders one exported type per group describing nested records.
// Leaves are "string | null". Skipped nodes are left out. A group whose type
// name is already taken is named after its parent's type, e.g. CategoryTotal.
func TypeScript(root *schema.Node) string {
	aliases := make(map[*schema.Node]string)
	taken := make(map[string]struct{})

	var groups []*schema.Node

	root.Walk(func(n *schema.Node, path []*schema.Node) bool {
		if n.Skip || n.IsLeaf() {
			return false
		}

		name := typeName(n)
		if _, dup := taken[name]; dup {
			// The root is visited first, so a duplicate always has a parent.
			last, _ := common.Last(path)
			parent := aliases[last]

			name = parent + name
			for i := 1; ; i++ {
				if _, dup := taken[name]; !dup {
					break
				}

				name = parent + typeName(n) + strconv.Itoa(i)
			}
		}

		taken[name] = struct{}{}
		aliases[n] = name
		groups = append(groups, n)

		return true
	})

	defs := []string{tsPreamble}

	for _, g := range slices.Backward(groups) {
		var b strings.Builder

		fmt.Fprintf(&b, "export type %s = {\n", aliases[g])

		for _, c := range g.Children {
			if c.Skip {
				continue
			}

			if c.Overrides(schema.AttrInputName) {
				fmt.Fprintf(&b, "%s/** %s */\n", indent, c.InputName)
			}

			typ := "string | null"
			if c.IsGroup() {
				typ = aliases[c]
			}

			fmt.Fprintf(&b, "%s%s: %s;\n", indent, tsProperty(c.OutputName), typ)
		}

		b.WriteString("}\n")
		defs = append(defs, b.String())
	}

	return strings.Join(defs, "\n")
}

func typeName(n *schema.Node) string {
	if name := schema.TypeName(n.DeclaredName); name != "" {
		return name
	}

	return n.DeclaredName
}

func tsProperty(name string) string {
	if tsIdentRe.MatchString(name) {
		return name
	}

	return strconv.Quote(name)
}
