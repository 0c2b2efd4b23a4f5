package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"marketlens/internal/schema"
	"marketlens/internal/util/jsonutil"
)

// Template defines the sections of one structured analysis prompt.
type Template struct {
	Role         string
	Task         string
	Limitations  []string
	Schema       *schema.Schema
	Example      any
	Guidance     []string
	OutputFormat string
}

// Render lays the template out as [SECTION] blocks. Empty sections are
// omitted.
func (tpl Template) Render() (string, error) {
	if strings.TrimSpace(tpl.Task) == "" {
		return "", fmt.Errorf("prompt: task is empty")
	}
	if tpl.Schema == nil {
		return "", fmt.Errorf("prompt: schema is nil")
	}
	example := ""
	if tpl.Example != nil {
		b, err := jsonutil.MarshalNoEscapeIndent(tpl.Example, "  ")
		if err != nil {
			return "", fmt.Errorf("prompt: encode example: %w", err)
		}
		example = string(b)
	}

	var buf bytes.Buffer
	writeSection(&buf, "ROLE", tpl.Role)
	writeSection(&buf, "TASK", tpl.Task)
	writeSection(&buf, "LIMITATIONS", formatList(tpl.Limitations))
	writeSection(&buf, "OUTPUT", formatFields(tpl.Schema.Fields()))
	writeSection(&buf, "EXAMPLE", example)
	writeSection(&buf, "GUIDANCE", formatList(tpl.Guidance))
	writeSection(&buf, "OUTPUT_FORMAT", tpl.OutputFormat)
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func formatFields(fields []schema.FieldInfo) string {
	var buf strings.Builder
	for _, f := range fields {
		req := "optional"
		if f.Required {
			req = "required"
		}
		fmt.Fprintf(&buf, "- %s (%s, %s)\n", f.Path, f.Type, req)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
