package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script marshals v for embedding in an application/ld+json script tag.
// encoding/json escapes <, > and &, so the payload cannot close the tag.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// Organization returns a minimal Organization schema.
func Organization(name, url, email, phone string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if email != "" {
		m["email"] = email
	}
	if phone != "" {
		m["telephone"] = phone
	}
	return m
}

// TouristDestination describes the island itself.
func TouristDestination(name, description, url string) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "TouristDestination",
		"name":        name,
		"description": description,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
		}
		if it.Item != "" {
			entry["item"] = it.Item
		}
		el = append(el, entry)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// LodgingBusiness returns a lodging schema payload.
func LodgingBusiness(name, description, url, locality, priceRange string, amenities []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "LodgingBusiness",
		"name":     name,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	if locality != "" {
		m["address"] = map[string]any{"@type": "PostalAddress", "addressLocality": locality}
	}
	if priceRange != "" {
		m["priceRange"] = priceRange
	}
	if len(amenities) > 0 {
		features := make([]map[string]any, 0, len(amenities))
		for _, a := range amenities {
			features = append(features, map[string]any{"@type": "LocationFeatureSpecification", "name": a, "value": true})
		}
		m["amenityFeature"] = features
	}
	return m
}

// Restaurant returns a restaurant schema payload.
func Restaurant(name, url, area, priceRange string, cuisines []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Restaurant",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if area != "" {
		m["address"] = map[string]any{"@type": "PostalAddress", "addressLocality": area}
	}
	if priceRange != "" {
		m["priceRange"] = priceRange
	}
	if len(cuisines) > 0 {
		m["servesCuisine"] = cuisines
	}
	return m
}

// TouristTrip returns an itinerary schema with one ItemList entry per step.
func TouristTrip(name, url string, steps []string) map[string]any {
	items := make([]map[string]any, 0, len(steps))
	for i, s := range steps {
		items = append(items, map[string]any{"@type": "ListItem", "position": i + 1, "name": s})
	}
	m := map[string]any{
		"@context":  "https://schema.org",
		"@type":     "TouristTrip",
		"name":      name,
		"itinerary": map[string]any{"@type": "ItemList", "itemListElement": items},
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// FAQ is a question/answer pair for FAQPage.
type FAQ struct {
	Question string
	Answer   string
}

// FAQPage returns a schema.org FAQPage payload.
func FAQPage(items []FAQ) map[string]any {
	entities := make([]map[string]any, 0, len(items))
	for _, it := range items {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  it.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  it.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

// TouristAttraction describes an activity.
func TouristAttraction(name, description, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "TouristAttraction",
		"name":     name,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	return m
}
