// Package site maps navigation routes to page view models. Page functions are
// pure: they read State and a slug and return a Page, nothing else.
package site

import "strings"

// DefaultRoute is used when the fragment names no route.
const DefaultRoute = "home"

// Route is a parsed navigation target such as #/stay/sunrise.
type Route struct {
	Name string
	Slug string
}

// ParseRoute parses "#/route/slug", "/route/slug" or "route/slug". Segments
// after the slug are ignored; an empty route resolves to DefaultRoute.
func ParseRoute(fragment string) Route {
	s := strings.TrimSpace(fragment)
	if i := strings.IndexAny(s, "?"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, "/")
	parts := strings.Split(s, "/")
	r := Route{Name: parts[0]}
	if len(parts) > 1 {
		r.Slug = parts[1]
	}
	if r.Name == "" {
		r.Name = DefaultRoute
	}
	return r
}

// Path renders the route as a server path.
func (r Route) Path() string {
	if r.Slug == "" {
		return "/" + r.Name
	}
	return "/" + r.Name + "/" + r.Slug
}

// Fragment renders the route in legacy hash form.
func (r Route) Fragment() string { return "#" + r.Path() }
