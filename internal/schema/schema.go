// Package schema holds the response contracts the analysis model must satisfy,
// one per query kind. A contract is rendered for the model (Gemini response
// schema), for validation (JSON Schema) and for prompts (field listing).
package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	genai "google.golang.org/genai"

	"marketlens/internal/types"
)

// Schema is a named response contract bound to a query kind.
type Schema struct {
	name string
	kind types.QueryKind
	root *Node

	once     sync.Once
	compiled *gojsonschema.Schema
	compErr  error
}

// New builds a contract. The root must be an object node.
func New(name string, kind types.QueryKind, root *Node) *Schema {
	if root == nil || root.Type != TypeObject {
		panic(fmt.Sprintf("schema %s: root must be an object", name))
	}
	return &Schema{name: name, kind: kind, root: root}
}

func (s *Schema) Name() string          { return s.name }
func (s *Schema) Kind() types.QueryKind { return s.kind }

// GenAI returns a fresh Gemini response schema for the contract.
func (s *Schema) GenAI() *genai.Schema { return s.root.genAI() }

// JSONSchema returns the contract as a draft-07 JSON Schema document.
func (s *Schema) JSONSchema() map[string]any {
	doc := s.root.jsonSchema()
	doc["$schema"] = "http://json-schema.org/draft-07/schema#"
	doc["title"] = s.name
	return doc
}

// Required lists the top-level required fields in declaration order.
func (s *Schema) Required() []string { return s.root.requiredNames() }

// FieldInfo is one row of the flattened field listing.
type FieldInfo struct {
	Path     string
	Type     string
	Required bool
}

// Fields flattens the contract into dotted paths. Array item objects are
// listed under "<field>[].<member>".
func (s *Schema) Fields() []FieldInfo {
	var out []FieldInfo
	walkFields(s.root, "", &out)
	return out
}

func walkFields(n *Node, prefix string, out *[]FieldInfo) {
	for _, f := range n.Fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		*out = append(*out, FieldInfo{Path: path, Type: f.Node.typeLabel(), Required: f.Required})
		switch {
		case f.Node.Type == TypeObject:
			walkFields(f.Node, path, out)
		case f.Node.Type == TypeArray && f.Node.Items != nil && f.Node.Items.Type == TypeObject:
			walkFields(f.Node.Items, path+"[]", out)
		}
	}
}

// ValidationError lists every way a document violates a contract.
type ValidationError struct {
	Schema   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: %s", e.Schema, strings.Join(e.Problems, "; "))
}

// Validate checks raw JSON against the contract. Malformed JSON is reported as
// a plain error; contract violations as *ValidationError.
func (s *Schema) Validate(raw []byte) error {
	compiled, err := s.compile()
	if err != nil {
		return err
	}
	res, err := compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema %s: %w", s.name, err)
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	sort.Strings(problems)
	return &ValidationError{Schema: s.name, Problems: problems}
}

func (s *Schema) compile() (*gojsonschema.Schema, error) {
	s.once.Do(func() {
		s.compiled, s.compErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.JSONSchema()))
		if s.compErr != nil {
			s.compErr = fmt.Errorf("compile schema %s: %w", s.name, s.compErr)
		}
	})
	return s.compiled, s.compErr
}
