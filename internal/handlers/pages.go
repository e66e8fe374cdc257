package handlers

import (
	"html/template"

	"finitefield.org/taniti-web/internal/nav"
	"finitefield.org/taniti-web/internal/seo"
	"finitefield.org/taniti-web/internal/site"
)

// SiteName appears in titles and Open Graph tags.
const SiteName = "Visit Taniti"

const defaultDescription = "Plan your trip to Taniti: places to stay, food, things to do and getting around."

// PageData is the view model for the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// CSRF is echoed into hx-headers and hidden form inputs.
	CSRF string
	// Warning is the dataset load banner, empty when the dataset loaded.
	Warning string
	// FiltersActive shows the reset link in the header.
	FiltersActive bool

	Page site.Page
	// Body is the rendered page template, filled in by the renderer.
	Body template.HTML
	// Form optionally carries a posted form back into the page.
	Form any
}

// Layout builds PageData for every response.
type Layout struct {
	BaseURL   string
	Analytics Analytics
}

// Build wraps a dispatched page in the layout view model.
func (l Layout) Build(p site.Page, csrf, warning string, filtersActive bool) PageData {
	path := p.Route.Path()
	title := p.Title + " | " + SiteName
	if p.Route.Name == site.DefaultRoute {
		title = SiteName
	}
	desc := p.Description
	if desc == "" {
		desc = defaultDescription
	}

	meta := seo.Meta{
		Title:       title,
		Description: desc,
		OG: seo.OpenGraph{
			Title:       p.Title,
			Description: desc,
			Type:        "website",
			SiteName:    SiteName,
		},
	}
	if l.BaseURL != "" {
		meta.Canonical = l.BaseURL + path
		meta.OG.URL = meta.Canonical
	}
	if p.NotFound {
		meta.Robots = "noindex"
	} else {
		for _, doc := range p.JSONLD {
			meta.JSONLD = append(meta.JSONLD, seo.Script(doc))
		}
		if len(p.Crumbs) > 1 {
			meta.JSONLD = append(meta.JSONLD, l.breadcrumbs(p.Crumbs, path))
		}
	}

	return PageData{
		Title:         title,
		Lang:          "en",
		SEO:           meta,
		Analytics:     l.Analytics,
		Path:          path,
		Nav:           nav.Build(path),
		Breadcrumbs:   p.Crumbs,
		CSRF:          csrf,
		Warning:       warning,
		FiltersActive: filtersActive,
		Page:          p,
	}
}

func (l Layout) breadcrumbs(crumbs []nav.Crumb, current string) template.JS {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		href := c.Href
		if c.Active {
			href = current
		}
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: l.BaseURL + href})
	}
	return seo.Script(seo.BreadcrumbList(items))
}
