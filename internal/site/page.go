package site

import (
	"finitefield.org/taniti-web/internal/cms"
	"finitefield.org/taniti-web/internal/dataset"
	"finitefield.org/taniti-web/internal/filters"
	"finitefield.org/taniti-web/internal/nav"
)

// Content provides editorial pages.
type Content interface {
	Page(kind, slug string) (cms.Page, error)
}

// State is everything a page function may read.
type State struct {
	Data    dataset.Dataset
	Filters filters.State
	Content Content
}

// Page is the view model produced for one route.
type Page struct {
	Route Route
	// Template names the body template, rendered as "page_<Template>".
	Template    string
	Title       string
	Subtitle    string
	Crumbs      []nav.Crumb
	Description string
	JSONLD      []map[string]any
	NotFound    bool
	Status      int
	Data        any
}

// Card is a generic titled card with a call to action.
type Card struct {
	Title string
	Body  string
	Tags  []string
	Href  string
	CTA   string
}

// Fact is a fast-fact tile on the home page.
type Fact struct {
	Label string
	Value string
}

// HomeView backs the home page.
type HomeView struct {
	Itineraries []ItineraryCard
	Facts       []Fact
	Areas       []Card
}

// ItineraryCard summarises an itinerary.
type ItineraryCard struct {
	ID      string
	Name    string
	Preview []string
	Steps   []string
	Stops   string
}

// ArticleView wraps a content page.
type ArticleView struct {
	Page cms.Page
}

// ThingsView backs the things-to-do index.
type ThingsView struct {
	Clusters []Card
	Featured []dataset.SlugActivity
	More     []dataset.ActivityLink
}

// ChipView is a filter chip with its checked state.
type ChipView struct {
	Kind    filters.Kind
	Key     string
	Label   string
	Checked bool
}

// StayListView backs the lodging list and its filter fragment.
type StayListView struct {
	Chips  []ChipView
	Result filters.Result[dataset.Stay]
}

// StayView backs a stay detail page.
type StayView struct {
	Stay   dataset.Stay
	Type   string
	Access []string
	Tags   []string
}

// VenueCard is a venue with display labels resolved.
type VenueCard struct {
	Venue dataset.Venue
	Tags  []string
}

// DiningListView backs the dining list and its filter fragment.
type DiningListView struct {
	Chips   []ChipView
	Items   []VenueCard
	Message string
}

// VenueView backs a dining detail page.
type VenueView struct {
	VenueCard
	Cuisine string
	Diet    []string
	Price   string
	Phone   string
	Tel     string
}

// TransportOption is a card on the getting-around index.
type TransportOption struct {
	Slug        string
	Title       string
	Description string
}

// TransportView backs the getting-around index.
type TransportView struct {
	Options []TransportOption
}

// FAQItem is one accordion entry.
type FAQItem struct {
	ID string
	Q  string
	A  string
}

// FAQView backs the FAQ accordion.
type FAQView struct {
	Items []FAQItem
}

// ContactView backs the contact page.
type ContactView struct {
	Office Office
}

// Office is the tourism board's contact card.
type Office struct {
	Name    string
	Address []string
	Phone   string
	Email   string
	Hours   string
	Support string
	Press   string
	Social  string
}

// ItineraryIndexView lists quick itineraries.
type ItineraryIndexView struct {
	Items []ItineraryCard
}

// Day is one linkified itinerary step.
type Day struct {
	Number int
	Text   string
	Href   string
}

// ItineraryView backs an itinerary detail page.
type ItineraryView struct {
	Itinerary dataset.Itinerary
	Days      []Day
}

// ActivityIndexView lists all activities.
type ActivityIndexView struct {
	Activities []dataset.SlugActivity
	More       []dataset.ActivityLink
}

// ActivityView backs a dataset activity page.
type ActivityView struct {
	Slug     string
	Activity dataset.Activity
}

// GenericActivityView backs a catalogued activity with no detail record.
type GenericActivityView struct {
	Title string
	Lower string
}

// NotFoundView explains what was missing.
type NotFoundView struct {
	Hint string
}
