package site

import (
	"net/http"
	"sort"
)

// PageFunc builds the page for a route. slug is empty for index routes.
type PageFunc func(st State, slug string) Page

// Registry maps route names to page functions.
type Registry struct {
	pages map[string]PageFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: map[string]PageFunc{}}
}

// Register binds name to fn, replacing any previous binding.
func (r *Registry) Register(name string, fn PageFunc) {
	r.pages[name] = fn
}

// Lookup returns the page function for name.
func (r *Registry) Lookup(name string) (PageFunc, bool) {
	fn, ok := r.pages[name]
	return fn, ok
}

// Names lists registered routes in lexical order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.pages))
	for name := range r.pages {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch resolves exactly one page for rt. Unknown routes yield the
// not-found page.
func (r *Registry) Dispatch(st State, rt Route) Page {
	fn, ok := r.pages[rt.Name]
	var p Page
	if ok {
		p = fn(st, rt.Slug)
	} else {
		p = NotFound(st, "")
	}
	p.Route = rt
	if p.Status == 0 {
		p.Status = http.StatusOK
		if p.NotFound {
			p.Status = http.StatusNotFound
		}
	}
	return p
}

// Pages returns the registry with every site route bound.
func Pages() *Registry {
	r := NewRegistry()
	r.Register("home", Home)
	r.Register("plan", Plan)
	r.Register("things", Things)
	r.Register("stay", Stay)
	r.Register("dining", Dining)
	r.Register("transport", Transport)
	r.Register("about", About)
	r.Register("faqs", FAQs)
	r.Register("contact", Contact)
	r.Register("itinerary", Itinerary)
	r.Register("activity", Activity)
	r.Register("area", Area)
	return r
}
