package preset

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// readmeData is the payload available to README templates.
type readmeData struct {
	Name   string
	Date   string
	Fields map[string]string
}

// RenderReadme renders the preset's README template for a project.
// Field defaults apply where values does not provide an entry.
func RenderReadme(p *Preset, projectName string, values map[string]string, now time.Time) (string, error) {
	tmpl, err := template.New("readme").Funcs(sprig.TxtFuncMap()).Parse(p.ReadmeTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse README template of preset %s: %w", p.ID, err)
	}

	fields := make(map[string]string, len(p.Fields))
	for _, field := range p.Fields {
		fields[field.ID] = field.Default
	}
	for id, value := range values {
		fields[id] = value
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, readmeData{
		Name:   projectName,
		Date:   now.Format("2006-01-02 15:04"),
		Fields: fields,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render README of preset %s: %w", p.ID, err)
	}

	return buf.String(), nil
}
