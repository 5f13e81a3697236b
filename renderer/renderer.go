// Package renderer renders securities as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/finsec"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"cell": cell,
}

// Render renders s to a markdown string: title, attribute table, identifiers and the chain of
// underliers.
func Render(s finsec.Security) string {
	partials := map[string]string{
		"security_title":       "security_title.md",
		"security_attributes":  "security_attributes.md",
		"security_identifiers": "security_identifiers.md",
		"security_underliers":  "security_underliers.md",
	}
	v, err := NewView(s)
	if err != nil {
		return fmt.Sprintf("error rendering security: %v", err)
	}
	return renderTemplate("security", "security.md", partials, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
