package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type TemplateName string

const (
	TemplateStyleClassification TemplateName = "style_classification.tmpl"
	TemplateStylePreCheck       TemplateName = "style_precheck.tmpl"
	TemplateVisionAnnotations   TemplateName = "vision_annotations.tmpl"
)

type Builder struct {
	mu        sync.RWMutex
	templates map[TemplateName]*template.Template
}

func NewBuilder() *Builder {
	return &Builder{
		templates: make(map[TemplateName]*template.Template),
	}
}

func (b *Builder) Render(name TemplateName, data any) (string, error) {
	tmpl, err := b.getTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}

	return buf.String(), nil
}

func (b *Builder) getTemplate(name TemplateName) (*template.Template, error) {
	b.mu.RLock()
	if tmpl, ok := b.templates[name]; ok {
		b.mu.RUnlock()
		return tmpl, nil
	}
	b.mu.RUnlock()

	filename := filepath.ToSlash(filepath.Join("templates", string(name)))
	content, err := templateFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load prompt template %s: %w", name, err)
	}

	tmpl, err := template.New(string(name)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %s: %w", name, err)
	}

	b.mu.Lock()
	b.templates[name] = tmpl
	b.mu.Unlock()

	return tmpl, nil
}
