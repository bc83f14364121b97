package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"promptstudio/internal/frameworks"
	"promptstudio/internal/shared/util"
)

// Format is an export file format.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatJSON:
		return true
	}
	return false
}

func (f Format) contentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Body        []byte
}

type exportDocument struct {
	Title       string                 `json:"title"`
	FrameworkID string                 `json:"frameworkId"`
	Framework   string                 `json:"framework"`
	Fields      frameworks.FieldValues `json:"fields"`
	Content     string                 `json:"content"`
	CreatedAt   string                 `json:"createdAt"`
}

func render(p Prompt, format Format) (ExportFile, error) {
	fw, _ := frameworks.ByID(p.FrameworkID)
	name := fw.Name
	if name == "" {
		name = p.FrameworkID
	}
	created := p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")

	var body []byte
	switch format {
	case FormatText:
		body = []byte(p.Content + "\n")
	case FormatMarkdown:
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", p.Title)
		fmt.Fprintf(&b, "_Framework: %s. Created %s._\n\n", name, created)
		if inputs := inputLines(fw, p.Fields); len(inputs) > 0 {
			b.WriteString("## Inputs\n\n")
			for _, line := range inputs {
				b.WriteString(line)
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
		b.WriteString("## Prompt\n\n")
		b.WriteString(p.Content)
		b.WriteByte('\n')
		body = []byte(b.String())
	case FormatJSON:
		doc := exportDocument{
			Title:       p.Title,
			FrameworkID: p.FrameworkID,
			Framework:   name,
			Fields:      p.Fields,
			Content:     p.Content,
			CreatedAt:   created,
		}
		var err error
		body, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return ExportFile{}, fmt.Errorf("encode export: %w", err)
		}
		body = append(body, '\n')
	default:
		return ExportFile{}, ErrInvalidFormat
	}

	stem, err := util.SanitizeFileName(p.Title)
	if err != nil {
		stem = "prompt"
	}
	return ExportFile{
		FileName:    stem + "." + string(format),
		ContentType: format.contentType(),
		Body:        body,
	}, nil
}

// inputLines lists non-empty fields in form order, using the form labels.
func inputLines(fw frameworks.Framework, values frameworks.FieldValues) []string {
	var out []string
	for _, f := range fw.Fields {
		v, ok := values[f.Name]
		if !ok || v.Empty() {
			continue
		}
		out = append(out, fmt.Sprintf("- **%s:** %s", f.Label, strings.Join(v.Items(), ", ")))
	}
	return out
}
