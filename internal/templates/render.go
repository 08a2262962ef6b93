package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"resume-builder/internal/resumes"
)

//go:embed layouts/*.html
var layoutFiles embed.FS

// ErrUnknownTemplate is returned for names outside resumes.Templates.
var ErrUnknownTemplate = errors.New("unknown template")

var funcs = template.FuncMap{
	"join":      func(items []string) string { return strings.Join(items, ", ") },
	"dateRange": dateRange,
	"hasSkills": func(s resumes.Skills) bool {
		return len(s.Technical)+len(s.Soft)+len(s.Languages)+len(s.Tools) > 0
	},
}

var layouts = mustParseLayouts()

func mustParseLayouts() *template.Template {
	patterns := []string{"layouts/partials.html"}
	for _, name := range resumes.Templates {
		patterns = append(patterns, "layouts/"+name+".html")
	}
	return template.Must(template.New("resume").Funcs(funcs).ParseFS(layoutFiles, patterns...))
}

// Names returns the available layout names.
func Names() []string {
	return append([]string(nil), resumes.Templates...)
}

// Valid reports whether name is a known layout.
func Valid(name string) bool {
	for _, n := range resumes.Templates {
		if n == name {
			return true
		}
	}
	return false
}

// Render writes the resume as a standalone HTML page in the named layout.
// Output is buffered so a failed render writes nothing.
func Render(w io.Writer, doc resumes.Resume, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !Valid(name) {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	var buf bytes.Buffer
	if err := layouts.ExecuteTemplate(&buf, name, doc); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func dateRange(start, end string, current bool) string {
	switch {
	case current:
		end = "Present"
	case end == "" && start != "":
		return start
	}
	if start == "" {
		return end
	}
	return start + " - " + end
}
