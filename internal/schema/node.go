package schema

import (
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// Type is a node type of the schema description language.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Node describes one value: a primitive, an object with ordered fields, or an
// array of a single item node. Nodes are treated as immutable once built; the
// modifier methods return copies.
type Node struct {
	Type        Type
	Fields      []Field
	Items       *Node
	Enum        []string
	Minimum     *float64
	Maximum     *float64
	MinItems    *int
	MaxItems    *int
	Description string
}

// Field is a named member of an object node.
type Field struct {
	Name     string
	Node     *Node
	Required bool
}

func String() *Node  { return &Node{Type: TypeString} }
func Number() *Node  { return &Node{Type: TypeNumber} }
func Integer() *Node { return &Node{Type: TypeInteger} }
func Boolean() *Node { return &Node{Type: TypeBoolean} }

func Object(fields ...Field) *Node {
	return &Node{Type: TypeObject, Fields: fields}
}

func ArrayOf(items *Node) *Node {
	return &Node{Type: TypeArray, Items: items}
}

// Req declares a required field.
func Req(name string, n *Node) Field { return Field{Name: name, Node: n, Required: true} }

// Opt declares an optional field.
func Opt(name string, n *Node) Field { return Field{Name: name, Node: n} }

// WithEnum restricts a string node to the given values.
func (n *Node) WithEnum(values ...string) *Node {
	c := n.clone()
	c.Enum = append([]string(nil), values...)
	return c
}

// Between bounds a numeric node, inclusive.
func (n *Node) Between(min, max float64) *Node {
	c := n.clone()
	c.Minimum = &min
	c.Maximum = &max
	return c
}

// AtLeast sets an inclusive lower bound on a numeric node.
func (n *Node) AtLeast(min float64) *Node {
	c := n.clone()
	c.Minimum = &min
	return c
}

// Exactly pins the length of an array node.
func (n *Node) Exactly(count int) *Node {
	c := n.clone()
	c.MinItems = &count
	c.MaxItems = &count
	return c
}

func (n *Node) Describe(desc string) *Node {
	c := n.clone()
	c.Description = desc
	return c
}

func (n *Node) clone() *Node {
	c := *n
	return &c
}

// requiredNames returns the required field names of an object node in
// declaration order.
func (n *Node) requiredNames() []string {
	var out []string
	for _, f := range n.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// genAI converts the node into the response schema understood by Gemini.
func (n *Node) genAI() *genai.Schema {
	out := &genai.Schema{Description: n.Description}
	switch n.Type {
	case TypeString:
		out.Type = genai.TypeString
		if len(n.Enum) > 0 {
			out.Format = "enum"
			out.Enum = append([]string(nil), n.Enum...)
		}
	case TypeNumber:
		out.Type = genai.TypeNumber
	case TypeInteger:
		out.Type = genai.TypeInteger
	case TypeBoolean:
		out.Type = genai.TypeBoolean
	case TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(n.Fields))
		out.PropertyOrdering = make([]string, 0, len(n.Fields))
		for _, f := range n.Fields {
			out.Properties[f.Name] = f.Node.genAI()
			out.PropertyOrdering = append(out.PropertyOrdering, f.Name)
		}
		out.Required = n.requiredNames()
	case TypeArray:
		out.Type = genai.TypeArray
		if n.Items != nil {
			out.Items = n.Items.genAI()
		}
		if n.MinItems != nil {
			v := int64(*n.MinItems)
			out.MinItems = &v
		}
		if n.MaxItems != nil {
			v := int64(*n.MaxItems)
			out.MaxItems = &v
		}
	}
	if n.Minimum != nil {
		v := *n.Minimum
		out.Minimum = &v
	}
	if n.Maximum != nil {
		v := *n.Maximum
		out.Maximum = &v
	}
	return out
}

// jsonSchema converts the node into a draft-07 JSON Schema fragment.
func (n *Node) jsonSchema() map[string]any {
	out := map[string]any{"type": string(n.Type)}
	if n.Description != "" {
		out["description"] = n.Description
	}
	if len(n.Enum) > 0 {
		out["enum"] = append([]string(nil), n.Enum...)
	}
	if n.Minimum != nil {
		out["minimum"] = *n.Minimum
	}
	if n.Maximum != nil {
		out["maximum"] = *n.Maximum
	}
	switch n.Type {
	case TypeObject:
		props := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			props[f.Name] = f.Node.jsonSchema()
		}
		out["properties"] = props
		if req := n.requiredNames(); len(req) > 0 {
			out["required"] = req
		}
	case TypeArray:
		if n.Items != nil {
			out["items"] = n.Items.jsonSchema()
		}
		if n.MinItems != nil {
			out["minItems"] = *n.MinItems
		}
		if n.MaxItems != nil {
			out["maxItems"] = *n.MaxItems
		}
	}
	return out
}

// typeLabel renders the node type for prompt field listings.
func (n *Node) typeLabel() string {
	var b strings.Builder
	switch n.Type {
	case TypeArray:
		item := "any"
		if n.Items != nil {
			item = n.Items.typeLabel()
		}
		b.WriteString("array of " + item)
		switch {
		case n.MinItems != nil && n.MaxItems != nil && *n.MinItems == *n.MaxItems:
			fmt.Fprintf(&b, ", exactly %d items", *n.MinItems)
		case n.MinItems != nil:
			fmt.Fprintf(&b, ", at least %d items", *n.MinItems)
		}
		return b.String()
	default:
		b.WriteString(string(n.Type))
	}
	if len(n.Enum) > 0 {
		b.WriteString(" one of " + strings.Join(n.Enum, "|"))
	}
	switch {
	case n.Minimum != nil && n.Maximum != nil:
		fmt.Fprintf(&b, " %g-%g", *n.Minimum, *n.Maximum)
	case n.Minimum != nil:
		fmt.Fprintf(&b, " >= %g", *n.Minimum)
	}
	return b.String()
}
