package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var errNotObject = errors.New("dataset: record is not an object")

// fields is one JSON object with its values left raw. Scalars read as
// strings; values of any other shape read as empty.
type fields map[string]json.RawMessage

func objectFields(b []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(b, &f); err != nil || f == nil {
		return nil, errNotObject
	}
	return f, nil
}

func (f fields) str(key string) string { return scalar(f[key]) }

func (f fields) strs(key string) []string {
	var items []json.RawMessage
	if json.Unmarshal(f[key], &items) != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := scalar(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// scalar renders a JSON string, number or bool as text. Numbers keep their
// literal form so an id of 12 matches the route slug "12".
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if dec.Decode(&v) != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// records decodes a JSON array, dropping elements that are not objects.
// Anything other than an array yields no records.
func records[T any](raw json.RawMessage) []T {
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if json.Unmarshal(item, &v) != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// UnmarshalJSON decodes each collection on its own so one malformed
// collection or record leaves the rest of the guide intact.
func (d *Dataset) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return errors.New("dataset: top-level value must be an object")
	}
	*d = Dataset{
		Itineraries:     records[Itinerary](f["itineraries"]),
		Dining:          records[Venue](f["dining"]),
		Stays:           records[Stay](f["stays"]),
		FAQs:            records[FAQ](f["faqs"]),
		OtherActivities: records[ActivityLink](f["otherActivities"]),
	}
	var acts map[string]json.RawMessage
	if json.Unmarshal(f["activities"], &acts) == nil {
		d.Activities = make(map[string]Activity, len(acts))
		for slug, raw := range acts {
			var a Activity
			if json.Unmarshal(raw, &a) == nil {
				d.Activities[slug] = a
			}
		}
	}
	return nil
}

// UnmarshalJSON decodes an itinerary, reading scalar fields leniently.
func (it *Itinerary) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*it = Itinerary{ID: f.str("id"), Name: f.str("name"), Steps: f.strs("steps")}
	return nil
}

// UnmarshalJSON decodes a venue, reading scalar fields leniently.
func (v *Venue) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*v = Venue{
		ID:       f.str("id"),
		Name:     f.str("name"),
		Area:     f.str("area"),
		Price:    f.str("price"),
		Cuisines: f.strs("cuisines"),
		Diet:     f.strs("diet"),
	}
	return nil
}

// UnmarshalJSON decodes a stay, reading scalar fields leniently.
func (s *Stay) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*s = Stay{
		ID:        f.str("id"),
		Name:      f.str("name"),
		Location:  f.str("location"),
		Best:      f.str("best"),
		Type:      f.str("type"),
		Price:     f.str("price"),
		Tags:      f.strs("tags"),
		Overview:  f.str("overview"),
		Amenities: f.strs("amenities"),
		Access:    f.strs("access"),
		Nearby:    f.strs("nearby"),
	}
	return nil
}

// UnmarshalJSON decodes an FAQ entry, reading scalar fields leniently.
func (q *FAQ) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*q = FAQ{Q: f.str("q"), A: f.str("a"), Link: f.str("link")}
	return nil
}

// UnmarshalJSON decodes an activity, reading scalar fields leniently.
func (a *Activity) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*a = Activity{
		Title:     f.str("title"),
		Type:      f.str("type"),
		Best:      f.str("best"),
		Overview:  f.str("overview"),
		Know:      f.strs("know"),
		Transport: f.str("transport"),
		Access:    f.strs("access"),
		Actions:   records[Action](f["actions"]),
		Tags:      f.strs("tags"),
	}
	return nil
}

// UnmarshalJSON decodes a catalogue link, reading scalar fields leniently.
func (l *ActivityLink) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*l = ActivityLink{Title: f.str("title"), Href: f.str("href")}
	return nil
}

// UnmarshalJSON accepts either a [label, href] pair or an object.
func (a *Action) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err == nil && pair != nil {
		*a = Action{}
		if len(pair) > 0 {
			a.Label = scalar(pair[0])
		}
		if len(pair) > 1 {
			a.Href = scalar(pair[1])
		}
		return nil
	}
	f, err := objectFields(b)
	if err != nil {
		return errors.New("dataset: action must be [label, href] or object")
	}
	*a = Action{Label: f.str("label"), Href: f.str("href")}
	return nil
}
