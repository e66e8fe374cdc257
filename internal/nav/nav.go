package nav

import (
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/stay"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry. The active (last) crumb has no link.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/home", Label: "Home"},
	{Path: "/plan", Label: "Plan"},
	{Path: "/things", Label: "Things to Do"},
	{Path: "/stay", Label: "Places to Stay"},
	{Path: "/dining", Label: "Food & Dining"},
	{Path: "/transport", Label: "Getting Around"},
	{Path: "/faqs", Label: "FAQs"},
	{Path: "/contact", Label: "Contact"},
}

// Section crumbs shared by page builders.
var (
	Home        = Crumb{Href: "/home", Label: "Home"}
	Things      = Crumb{Href: "/things", Label: "Things to Do"}
	Stay        = Crumb{Href: "/stay", Label: "Places to Stay"}
	Dining      = Crumb{Href: "/dining", Label: "Food & Dining"}
	Transport   = Crumb{Href: "/transport", Label: "Getting Around"}
	Itineraries = Crumb{Href: "/itinerary", Label: "Quick Itineraries"}
)

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" || currentPath == "/" {
		currentPath = "/home"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	// match exact or prefix boundary: "/stay" or "/stay/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Trail builds a breadcrumb trail, marking the last entry as the current page.
func Trail(items ...Crumb) []Crumb {
	out := make([]Crumb, len(items))
	copy(out, items)
	for i := range out {
		out[i].Active = false
	}
	if n := len(out); n > 0 {
		out[n-1].Active = true
		out[n-1].Href = ""
	}
	return out
}

// Current returns a crumb for the current page label.
func Current(label string) Crumb {
	return Crumb{Label: label}
}
