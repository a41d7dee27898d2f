// Package views renders the server-side HTML pages from templates embedded
// into the binary.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var files embed.FS

// pages are the content templates, each paired with the shared layout.
var pages = []string{
	"homepage",
	"myportfolio",
	"show",
	"new",
	"update",
	"login",
	"signin",
	"authorpage",
}

type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template against the shared layout. Parse
// failures are startup errors, not request errors.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
