package dataset

import (
	"fmt"
	"strings"
)

// Problem describes a structural issue in a dataset record.
type Problem struct {
	Collection string
	Index      int
	ID         string
	Message    string
}

// String renders the problem as "collection[index] (id): message".
func (p Problem) String() string {
	if p.ID != "" {
		return fmt.Sprintf("%s[%d] (%s): %s", p.Collection, p.Index, p.ID, p.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", p.Collection, p.Index, p.Message)
}

var priceBands = map[string]bool{"$": true, "$$": true, "$$$": true}

// Validate reports problems that would make records unreachable or render
// poorly. It never rejects a dataset; serving continues regardless.
func (d Dataset) Validate() []Problem {
	var out []Problem
	add := func(coll string, i int, id, msg string) {
		out = append(out, Problem{Collection: coll, Index: i, ID: id, Message: msg})
	}

	seen := map[string]bool{}
	for i, s := range d.Stays {
		checkID("stays", i, s.ID, seen, add)
		if strings.TrimSpace(s.Name) == "" {
			add("stays", i, s.ID, "missing name")
		}
		if !priceBands[s.Price] {
			add("stays", i, s.ID, fmt.Sprintf("unknown price band %q", s.Price))
		}
	}

	seen = map[string]bool{}
	for i, v := range d.Dining {
		checkID("dining", i, v.ID, seen, add)
		if strings.TrimSpace(v.Name) == "" {
			add("dining", i, v.ID, "missing name")
		}
		if v.Price != "" && !priceBands[v.Price] {
			add("dining", i, v.ID, fmt.Sprintf("unknown price band %q", v.Price))
		}
	}

	seen = map[string]bool{}
	for i, it := range d.Itineraries {
		checkID("itineraries", i, it.ID, seen, add)
		if len(it.Steps) == 0 {
			add("itineraries", i, it.ID, "no steps")
		}
	}

	for i, f := range d.FAQs {
		if strings.TrimSpace(f.Q) == "" || strings.TrimSpace(f.A) == "" {
			add("faqs", i, "", "question and answer are required")
		}
	}

	for i, slug := range d.ActivitySlugs() {
		if strings.TrimSpace(d.Activities[slug].Title) == "" {
			add("activities", i, slug, "missing title")
		}
	}
	for i, l := range d.OtherActivities {
		if strings.TrimSpace(l.Title) == "" || strings.TrimSpace(l.Href) == "" {
			add("otherActivities", i, "", "title and href are required")
		}
	}
	return out
}

func checkID(coll string, i int, id string, seen map[string]bool, add func(string, int, string, string)) {
	switch {
	case strings.TrimSpace(id) == "":
		add(coll, i, id, "missing id")
	case seen[id]:
		add(coll, i, id, "duplicate id")
	}
	seen[id] = true
}
