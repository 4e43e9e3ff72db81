// Package web holds the embedded HTML templates and static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	tododomain "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageIndex    = "index.html"
)

type AuthPage struct {
	Error    string
	Username string
	Notice   string
}

type IndexPage struct {
	Username   string
	Items      []tododomain.Item
	ChatID     string
	Subscribed bool
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"timestamp": func(t time.Time) string { return t.Format(constants.NotifierTimestampLayout) },
	"add":       func(a, b int) int { return a + b },
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{PageLogin, PageRegister, PageIndex} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes into a buffer first so a template failure never leaves a half-written 200.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
