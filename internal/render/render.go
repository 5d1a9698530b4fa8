// Package render is the html/template implementation of the rendering
// boundary: given a view name and a data bag it produces the response body.
// The workflow core only ever supplies the bag.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/lifeline-dev/lifeline/internal/logger"
)

const baseTemplate = "base.html"

type Renderer struct {
	templates map[string]*template.Template
}

// MustLoad parses every page template in tmplPath against base.html.
// Panics on malformed templates; a missing page is a deploy error, not a
// runtime condition.
func MustLoad(tmplPath string) *Renderer {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		panic("can't read templates dir: " + err.Error())
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		templates[f.Name()] = template.Must(template.New(baseTemplate).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
		))
	}
	return &Renderer{templates: templates}
}

func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := r.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
