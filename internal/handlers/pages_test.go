package handlers

import (
	"strings"
	"testing"

	"finitefield.org/taniti-web/internal/nav"
	"finitefield.org/taniti-web/internal/site"
)

func TestLayoutBuild(t *testing.T) {
	l := Layout{BaseURL: "https://visit-taniti.example"}
	p := site.Page{
		Route:  site.Route{Name: "stay", Slug: "coral"},
		Title:  "Coral Resort",
		Crumbs: nav.Trail(nav.Home, nav.Stay, nav.Current("Coral Resort")),
		JSONLD: []map[string]any{{"@type": "LodgingBusiness"}},
	}
	d := l.Build(p, "tok", "", false)

	if d.Title != "Coral Resort | Visit Taniti" {
		t.Fatalf("unexpected title %q", d.Title)
	}
	if d.SEO.Canonical != "https://visit-taniti.example/stay/coral" {
		t.Fatalf("unexpected canonical %q", d.SEO.Canonical)
	}
	if d.SEO.Description != defaultDescription {
		t.Fatalf("expected default description, got %q", d.SEO.Description)
	}
	if len(d.SEO.JSONLD) != 2 {
		t.Fatalf("expected page and breadcrumb JSON-LD, got %d", len(d.SEO.JSONLD))
	}
	if !strings.Contains(string(d.SEO.JSONLD[1]), `"item":"https://visit-taniti.example/stay/coral"`) {
		t.Fatalf("breadcrumb should point at the current page: %s", d.SEO.JSONLD[1])
	}
	active := 0
	for _, it := range d.Nav {
		if it.Active {
			active++
			if it.Href != "/stay" {
				t.Fatalf("unexpected active nav %q", it.Href)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected one active nav item, got %d", active)
	}
}

func TestLayoutBuildNotFound(t *testing.T) {
	p := site.Page{Route: site.Route{Name: "stay", Slug: "x"}, Title: "Page not found", NotFound: true,
		JSONLD: []map[string]any{{"@type": "Thing"}}}
	d := Layout{}.Build(p, "", "warn", false)
	if d.SEO.Robots != "noindex" || len(d.SEO.JSONLD) != 0 {
		t.Fatalf("not-found pages must be noindex without JSON-LD: %+v", d.SEO)
	}
	if d.SEO.Canonical != "" {
		t.Fatalf("no canonical without base URL")
	}
	if d.Warning != "warn" {
		t.Fatalf("warning not carried")
	}
}

func TestAnalyticsEnabled(t *testing.T) {
	if (Analytics{}).Enabled() {
		t.Fatalf("empty analytics must be disabled")
	}
	if !(Analytics{GTMContainerID: "GTM-1"}).Enabled() {
		t.Fatalf("expected enabled")
	}
}
