// Package filters implements the lodging and dining list filters.
//
// Lodging: price bands are OR-combined, every other key is a required tag.
// Dining: dietary keys are all required, cuisine keys match any.
// Selecting nothing of a kind places no constraint of that kind.
package filters

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"finitefield.org/taniti-web/internal/dataset"
)

// Empty-state messages shown when no item survives filtering.
const (
	NoStaysMessage  = "No stays found. Clear a filter or try a different price band."
	NoVenuesMessage = "No venues match all filters. Try fewer dietary restrictions or a wider area."
)

// ErrUnknownKey is returned when toggling a key outside the chip vocabulary.
var ErrUnknownKey = errors.New("filters: unknown key")

// Kind names one of the two filterable lists.
type Kind string

const (
	Lodging Kind = "stay"
	Dining  Kind = "dining"
)

// ParseKind maps a route segment to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case Lodging:
		return Lodging, true
	case Dining:
		return Dining, true
	}
	return "", false
}

// Chip is a toggleable filter control.
type Chip struct {
	Key   string
	Label string
}

// StayChips lists lodging filters in display order.
var StayChips = []Chip{
	{Key: "price-$", Label: "$"},
	{Key: "price-$$", Label: "$$"},
	{Key: "price-$$$", Label: "$$$"},
	{Key: "family-owned", Label: "Family-owned"},
	{Key: "walkable", Label: "Walkable"},
	{Key: "beachfront", Label: "Beachfront"},
	{Key: "families", Label: "Best for families"},
}

// DiningChips lists dining filters in display order.
var DiningChips = []Chip{
	{Key: "diet-vegetarian", Label: "Vegetarian"},
	{Key: "diet-vegan", Label: "Vegan"},
	{Key: "diet-gluten-free", Label: "Gluten-free"},
	{Key: "cui-local", Label: "Local fish & rice"},
	{Key: "cui-american", Label: "American-style"},
	{Key: "cui-pan-asian", Label: "Pan-Asian"},
}

// Chips returns the chip vocabulary for kind.
func Chips(kind Kind) []Chip {
	switch kind {
	case Lodging:
		return StayChips
	case Dining:
		return DiningChips
	}
	return nil
}

// Known reports whether key is part of the vocabulary for kind.
func Known(kind Kind, key string) bool {
	for _, c := range Chips(kind) {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Selection is an unordered set of filter keys. The zero value is empty.
// Operations return new selections and never modify the receiver.
type Selection struct {
	keys map[string]struct{}
}

// NewSelection builds a selection; duplicates collapse.
func NewSelection(keys ...string) Selection {
	s := Selection{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			s.keys[k] = struct{}{}
		}
	}
	return s
}

// Has reports whether key is selected.
func (s Selection) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of selected keys.
func (s Selection) Len() int { return len(s.keys) }

// Toggle adds key if absent, removes it otherwise.
func (s Selection) Toggle(key string) Selection {
	keys := s.Keys()
	if s.Has(key) {
		out := keys[:0]
		for _, k := range keys {
			if k != key {
				out = append(out, k)
			}
		}
		return NewSelection(out...)
	}
	return NewSelection(append(keys, key)...)
}

// Keys returns the keys in lexical order.
func (s Selection) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON writes the keys as a sorted string array.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

// UnmarshalJSON reads a string array written by MarshalJSON.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var keys []string
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	*s = NewSelection(keys...)
	return nil
}

// State is the complete filter state: one selection per list.
type State struct {
	Stay   Selection `json:"stay"`
	Dining Selection `json:"dining"`
}

// Selection returns the selection for kind.
func (st State) Selection(kind Kind) Selection {
	if kind == Dining {
		return st.Dining
	}
	return st.Stay
}

// Toggle flips key in the selection for kind. Keys outside the vocabulary
// are rejected.
func (st State) Toggle(kind Kind, key string) (State, error) {
	if !Known(kind, key) {
		return st, fmt.Errorf("%w: %s %q", ErrUnknownKey, kind, key)
	}
	switch kind {
	case Lodging:
		st.Stay = st.Stay.Toggle(key)
	case Dining:
		st.Dining = st.Dining.Toggle(key)
	}
	return st, nil
}

// Reset clears both selections.
func (st State) Reset() State { return State{} }

// Empty reports whether no filter is selected.
func (st State) Empty() bool { return st.Stay.Len() == 0 && st.Dining.Len() == 0 }

// Result is a filtered list or, when nothing matched, the empty-state message.
type Result[T any] struct {
	Items   []T
	Message string
}

var priceKeys = []string{"price-$", "price-$$", "price-$$$"}

// Stays filters stays: any selected price band AND every selected tag.
func Stays(stays []dataset.Stay, sel Selection) Result[dataset.Stay] {
	var bands []string
	for _, k := range priceKeys {
		if sel.Has(k) {
			bands = append(bands, strings.TrimPrefix(k, "price-"))
		}
	}
	var tags []string
	for _, k := range sel.Keys() {
		if !strings.HasPrefix(k, "price-") {
			tags = append(tags, k)
		}
	}

	items := make([]dataset.Stay, 0, len(stays))
	for _, s := range stays {
		if len(bands) > 0 && !contains(bands, s.Price) {
			continue
		}
		if !containsAll(s.Tags, tags) {
			continue
		}
		items = append(items, s)
	}
	if len(items) == 0 {
		return Result[dataset.Stay]{Items: items, Message: NoStaysMessage}
	}
	return Result[dataset.Stay]{Items: items}
}

var (
	dietValues = map[string]string{
		"diet-vegetarian":  "vegetarian",
		"diet-vegan":       "vegan",
		"diet-gluten-free": "gluten-free",
	}
	cuisineValues = map[string]string{
		"cui-local":     "local",
		"cui-american":  "american",
		"cui-pan-asian": "pan-asian",
	}
)

// Venues filters venues: every selected diet AND any selected cuisine.
func Venues(venues []dataset.Venue, sel Selection) Result[dataset.Venue] {
	var diets, cuisines []string
	var impossible bool
	for _, k := range sel.Keys() {
		switch {
		case strings.HasPrefix(k, "diet-"):
			v, ok := dietValues[k]
			if !ok {
				// an unmapped dietary key can never be satisfied
				impossible = true
			}
			diets = append(diets, v)
		case strings.HasPrefix(k, "cui-"):
			if v, ok := cuisineValues[k]; ok {
				cuisines = append(cuisines, v)
			} else {
				cuisines = append(cuisines, "")
			}
		}
	}

	items := make([]dataset.Venue, 0, len(venues))
	if !impossible {
		for _, v := range venues {
			if !containsAll(v.Diet, diets) {
				continue
			}
			if len(cuisines) > 0 && !containsAny(v.Cuisines, cuisines) {
				continue
			}
			items = append(items, v)
		}
	}
	if len(items) == 0 {
		return Result[dataset.Venue]{Items: items, Message: NoVenuesMessage}
	}
	return Result[dataset.Venue]{Items: items}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAll(list, want []string) bool {
	for _, w := range want {
		if !contains(list, w) {
			return false
		}
	}
	return true
}

func containsAny(list, want []string) bool {
	for _, w := range want {
		if w != "" && contains(list, w) {
			return true
		}
	}
	return false
}

// CuisineLabel returns the display label for a cuisine value.
func CuisineLabel(v string) string {
	switch v {
	case "local":
		return "Local fish & rice"
	case "american":
		return "American-style"
	case "pan-asian":
		return "Pan-Asian"
	}
	return v
}

// DietLabel returns the display label for a dietary value.
func DietLabel(v string) string {
	switch v {
	case "vegetarian":
		return "Vegetarian"
	case "vegan":
		return "Vegan"
	case "gluten-free":
		return "Gluten-free"
	}
	return v
}
