// Package dataset holds the read-only travel guide data that every page renders from.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dataset is the decoded travel guide. It is never mutated after loading.
type Dataset struct {
	Itineraries     []Itinerary         `json:"itineraries"`
	Dining          []Venue             `json:"dining"`
	Stays           []Stay              `json:"stays"`
	FAQs            []FAQ               `json:"faqs"`
	Activities      map[string]Activity `json:"activities"`
	OtherActivities []ActivityLink      `json:"otherActivities,omitempty"`
}

// Itinerary is a quick multi-day plan; each step is one day.
type Itinerary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

// Venue is a restaurant listed on the dining page.
type Venue struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Area     string   `json:"area"`
	Price    string   `json:"price"`
	Cuisines []string `json:"cuisines"`
	Diet     []string `json:"diet"`
}

// Stay is a lodging option.
type Stay struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Best      string   `json:"best"`
	Type      string   `json:"type,omitempty"`
	Price     string   `json:"price"`
	Tags      []string `json:"tags"`
	Overview  string   `json:"overview,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Access    []string `json:"access,omitempty"`
	Nearby    []string `json:"nearby,omitempty"`
}

// FAQ is a single question and answer.
type FAQ struct {
	Q    string `json:"q"`
	A    string `json:"a"`
	Link string `json:"link,omitempty"`
}

// Activity is a detailed activity record keyed by slug in Dataset.Activities.
type Activity struct {
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Best      string   `json:"best,omitempty"`
	Overview  string   `json:"overview,omitempty"`
	Know      []string `json:"know,omitempty"`
	Transport string   `json:"transport,omitempty"`
	Access    []string `json:"access,omitempty"`
	Actions   []Action `json:"actions,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Action is a call-to-action link on an activity page.
type Action struct {
	Label string
	Href  string
}

// MarshalJSON writes the compact [label, href] form.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{a.Label, a.Href})
}

// ActivityLink is an entry in the "more things to do" list.
type ActivityLink struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Slug returns the activity slug when Href points at an activity route.
func (l ActivityLink) Slug() string {
	h := strings.TrimPrefix(strings.TrimPrefix(l.Href, "#"), "/")
	rest, ok := strings.CutPrefix(h, "activity/")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Empty returns the empty-shaped dataset used when loading fails.
func Empty() Dataset {
	return Dataset{
		Itineraries:     []Itinerary{},
		Dining:          []Venue{},
		Stays:           []Stay{},
		FAQs:            []FAQ{},
		Activities:      map[string]Activity{},
		OtherActivities: []ActivityLink{},
	}
}

// Decode reads a dataset from JSON. Unknown keys are ignored, missing
// collections decode as empty ones, and badly typed fields degrade to empty
// values instead of failing the whole document.
func Decode(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("dataset: decode: %w", err)
	}
	d.normalize()
	return d, nil
}

func (d *Dataset) normalize() {
	if d.Itineraries == nil {
		d.Itineraries = []Itinerary{}
	}
	if d.Dining == nil {
		d.Dining = []Venue{}
	}
	if d.Stays == nil {
		d.Stays = []Stay{}
	}
	if d.FAQs == nil {
		d.FAQs = []FAQ{}
	}
	if d.Activities == nil {
		d.Activities = map[string]Activity{}
	}
	if d.OtherActivities == nil {
		d.OtherActivities = []ActivityLink{}
	}
	for i := range d.Stays {
		if d.Stays[i].Tags == nil {
			d.Stays[i].Tags = []string{}
		}
	}
	for i := range d.Dining {
		if d.Dining[i].Cuisines == nil {
			d.Dining[i].Cuisines = []string{}
		}
		if d.Dining[i].Diet == nil {
			d.Dining[i].Diet = []string{}
		}
	}
}

// Stay looks up a stay by id.
func (d Dataset) Stay(id string) (Stay, bool) {
	for _, s := range d.Stays {
		if s.ID == id {
			return s, true
		}
	}
	return Stay{}, false
}

// Venue looks up a dining venue by id.
func (d Dataset) Venue(id string) (Venue, bool) {
	for _, v := range d.Dining {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}

// Itinerary looks up an itinerary by id.
func (d Dataset) Itinerary(id string) (Itinerary, bool) {
	for _, it := range d.Itineraries {
		if it.ID == id {
			return it, true
		}
	}
	return Itinerary{}, false
}

// Activity looks up an activity by slug.
func (d Dataset) Activity(slug string) (Activity, bool) {
	a, ok := d.Activities[slug]
	return a, ok
}

// CatalogedActivity reports whether slug is referenced from the "more things
// to do" list, returning the listed title.
func (d Dataset) CatalogedActivity(slug string) (string, bool) {
	if slug == "" {
		return "", false
	}
	for _, l := range d.OtherActivities {
		if l.Slug() == slug {
			return l.Title, true
		}
	}
	return "", false
}

// SlugActivity pairs an activity with its slug.
type SlugActivity struct {
	Slug string
	Activity
}

// Featured returns the activities named in order that exist in the dataset.
func (d Dataset) Featured(order ...string) []SlugActivity {
	out := make([]SlugActivity, 0, len(order))
	for _, slug := range order {
		if a, ok := d.Activities[slug]; ok {
			out = append(out, SlugActivity{Slug: slug, Activity: a})
		}
	}
	return out
}

// EntityTitle resolves a display name for a stay, venue or itinerary id.
// It backs dialog subject inference from the card a trigger sits in.
func (d Dataset) EntityTitle(kind, id string) (string, bool) {
	switch kind {
	case "stay":
		if s, ok := d.Stay(id); ok {
			return s.Name, true
		}
	case "dining":
		if v, ok := d.Venue(id); ok {
			return v.Name, true
		}
	case "itinerary":
		if it, ok := d.Itinerary(id); ok {
			return it.Name, true
		}
	}
	return "", false
}

// ActivitySlugs returns the activity slugs in lexical order.
func (d Dataset) ActivitySlugs() []string {
	out := make([]string, 0, len(d.Activities))
	for slug := range d.Activities {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
