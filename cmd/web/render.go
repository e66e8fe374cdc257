package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/taniti-web/internal/forms"
	handlersPkg "finitefield.org/taniti-web/internal/handlers"
	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/site"
)

const (
	layoutFull     = "base"
	layoutFragment = "app_fragment"
)

// viewBundle pairs a fragment view with the CSRF token its forms need.
type viewBundle struct {
	CSRF string
	View any
}

type chipFormView struct {
	Action string
	Target string
	CSRF   string
	Chips  []site.ChipView
}

var funcMap = template.FuncMap{
	"now":   time.Now,
	"query": url.QueryEscape,
	"bundle": func(csrf string, view any) viewBundle {
		return viewBundle{CSRF: csrf, View: view}
	},
	"chipForm": func(action, target, csrf string, chips []site.ChipView) chipFormView {
		return chipFormView{Action: action, Target: target, CSRF: csrf, Chips: chips}
	},
	"contactForm": func(csrf string) FormView {
		return contactView(csrf, forms.Contact.Defaults(), forms.Result{}, "")
	},
}

// views parses the template tree once, or on every call in dev mode.
type views struct {
	fsys   fs.FS
	reload bool
	cached *template.Template
}

func newViews(fsys fs.FS, reload bool) (*views, error) {
	v := &views{fsys: fsys, reload: reload}
	if !reload {
		t, err := parseTemplates(fsys)
		if err != nil {
			return nil, err
		}
		v.cached = t
	}
	return v, nil
}

func (v *views) templates() (*template.Template, error) {
	if v.reload {
		return parseTemplates(v.fsys)
	}
	if v.cached == nil {
		return nil, fmt.Errorf("templates not initialized")
	}
	return v.cached, nil
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	// ParseFS has no ** glob, so collect the files by walking.
	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found")
	}
	return template.New("_root").Funcs(funcMap).ParseFS(fsys, files...)
}

// page renders the page body and wraps it in layout.
func (v *views) page(w io.Writer, pd handlersPkg.PageData, layout string) error {
	t, err := v.templates()
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := t.ExecuteTemplate(&body, "page_"+pd.Page.Template, pd); err != nil {
		return fmt.Errorf("render page_%s: %w", pd.Page.Template, err)
	}
	pd.Body = template.HTML(body.String())
	if err := t.ExecuteTemplate(w, layout, pd); err != nil {
		return fmt.Errorf("render %s: %w", layout, err)
	}
	return nil
}

// fragment renders a single named template.
func (v *views) fragment(w io.Writer, name string, data any) error {
	t, err := v.templates()
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// writeHTML buffers output so template errors still produce a clean 500.
func writeHTML(w http.ResponseWriter, r *http.Request, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		observability.FromContext(r.Context()).Error("template execution failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
