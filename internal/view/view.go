// Package view renders the HTML pages. Every page is parsed together with the shared layout
// from the embedded templates directory, and the result is plugged into gin as its HTML
// renderer.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gin-gonic/gin/render"
	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/validation"
)

// Page names, used as the name argument of gin.Context.HTML.
const (
	Index   = "index"
	About   = "about"
	List    = "contact"
	Add     = "add-contact"
	Edit    = "edit-contact"
	Detail  = "detail"
	layout  = "layout"
	partial = "errors"
)

var pages = []string{Index, About, List, Add, Edit, Detail}

//go:embed templates/*.html
var templates embed.FS

// Page is the data passed to every template.
type Page struct {
	Title    string
	Msg      string
	Name     string
	Samples  []model.Contact
	Contacts []model.Contact
	Contact  model.Contact
	OldName  string
	Errors   validation.Errors
}

// funcs are available in every page. Names go through pathescape before they become a path
// segment, since html/template leaves '?' and '/' in a URL as they are.
var funcs = template.FuncMap{
	"inc":        func(i int) int { return i + 1 },
	"pathescape": url.PathEscape,
}

// Renderer implements gin's render.HTMLRender with one template set per page.
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses all pages. It fails if any template does not parse.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templates,
			"templates/"+layout+".html",
			"templates/"+partial+".html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Instance returns the render for the named page wrapped in the layout. An unknown name panics,
// which gin's recovery middleware answers with a server error.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		panic(fmt.Sprintf("view: unknown page %q", name))
	}
	return render.HTML{Template: t, Name: layout, Data: data}
}
