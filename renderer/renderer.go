// Package renderer turns report structs into markdown strings using embedded
// text templates.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/fingest/networth"
)

//go:embed templates/*.md
var templates embed.FS

// RenderEvolution renders the latest-day snapshot of an evolution to a
// markdown string.
func RenderEvolution(r *networth.EvolutionReport) string {
	partials := map[string]string{
		"evolution_summary":  "templates/evolution_summary.md",
		"evolution_holdings": "templates/evolution_holdings.md",
	}
	return renderTemplate("evolution", "templates/evolution.md", partials, r)
}

// RenderGains renders the bucketed realized-gains report to a markdown string.
func RenderGains(r *networth.GainsReport) string {
	return renderTemplate("gains", "templates/gains.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends
// on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
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
