package main

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"finitefield.org/taniti-web/internal/filters"
	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/site"
)

// state assembles the page inputs for this request.
func (s *server) state(r *http.Request) site.State {
	return site.State{
		Data:    s.store.Current().Data,
		Filters: mw.GetSession(r).Filters,
		Content: s.content,
	}
}

// PageHandler resolves the request path to a page and renders it into the
// layout, or only the #app region for htmx navigation.
func (s *server) PageHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if r.URL.Query().Get("reset") == "1" {
		sess.SetFilters(sess.Filters.Reset())
		if mw.IsHTMX(r.Context()) {
			w.Header().Set("HX-Push-Url", r.URL.Path)
		}
	}

	rt := site.ParseRoute(r.URL.Path)
	ctx, span := observability.StartSpan(r.Context(), "site.dispatch",
		attribute.String("route.name", rt.Name),
		attribute.String("route.slug", rt.Slug),
	)
	p := s.pages.Dispatch(s.state(r), rt)
	span.SetAttributes(attribute.Bool("route.not_found", p.NotFound))
	span.End()
	s.metrics.PageDispatched(ctx, rt.Name, p.NotFound)

	s.renderPage(w, r.WithContext(ctx), p, nil)
}

func (s *server) renderPage(w http.ResponseWriter, r *http.Request, p site.Page, form any) {
	sess := mw.GetSession(r)
	pd := s.layout.Build(p, sess.CSRFToken, s.store.Current().Warning, !sess.Filters.Empty())
	pd.Form = form
	layout := layoutFull
	if mw.HTMXFromContext(r.Context()).TargetsApp() {
		layout = layoutFragment
	}
	writeHTML(w, r, p.Status, func(out io.Writer) error {
		return s.views.page(out, pd, layout)
	})
}

// StayFiltersHandler toggles one lodging chip.
func (s *server) StayFiltersHandler(w http.ResponseWriter, r *http.Request) {
	s.toggleFilter(w, r, filters.Lodging, "/stay", "stay_results", func(st site.State) any {
		return site.StayList(st)
	})
}

// DiningFiltersHandler toggles one dining chip.
func (s *server) DiningFiltersHandler(w http.ResponseWriter, r *http.Request) {
	s.toggleFilter(w, r, filters.Dining, "/dining", "dining_results", func(st site.State) any {
		return site.DiningList(st)
	})
}

func (s *server) toggleFilter(w http.ResponseWriter, r *http.Request, kind filters.Kind, back, fragment string, view func(site.State) any) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	sess := mw.GetSession(r)
	next, err := sess.Filters.Toggle(kind, strings.TrimSpace(r.PostForm.Get("key")))
	if errors.Is(err, filters.ErrUnknownKey) {
		mw.WriteError(w, r, http.StatusBadRequest, "unknown filter")
		return
	}
	sess.SetFilters(next)

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	data := viewBundle{CSRF: sess.CSRFToken, View: view(s.state(r))}
	writeHTML(w, r, http.StatusOK, func(out io.Writer) error {
		return s.views.fragment(out, fragment, data)
	})
}
