// Package forms holds the demo booking, reservation and contact forms and the
// dialog controller that hosts the first two.
package forms

import (
	"fmt"
	"net/url"
	"strings"
)

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Type        string // text, email, tel, date, time, number, select, textarea
	Placeholder string
	Default     string
	Options     []string
	Required    bool
}

// Spec describes a form: its fields, required-field message and the
// confirmation it produces.
type Spec struct {
	Kind         string
	IDPrefix     string
	DefaultTitle string
	SubmitLabel  string
	Fields       []Field
	// Missing is shown when a required field is blank.
	Missing string
	confirm func(v Values, subject string) string
}

// FieldID returns the DOM id for a field.
func (s Spec) FieldID(name string) string { return s.IDPrefix + "-" + name }

// Field returns the named field.
func (s Spec) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns the initial field values.
func (s Spec) Defaults() Values {
	v := Values{}
	for _, f := range s.Fields {
		if f.Default != "" {
			v[f.Name] = f.Default
		}
	}
	return v
}

// Values are trimmed form inputs keyed by field name.
type Values map[string]string

// Get returns the trimmed value for name.
func (v Values) Get(name string) string { return strings.TrimSpace(v[name]) }

// ValuesFrom extracts the dialog's fields from posted form data.
func ValuesFrom(spec Spec, form url.Values) Values {
	v := Values{}
	for _, f := range spec.Fields {
		if raw, ok := form[f.Name]; ok && len(raw) > 0 {
			v[f.Name] = strings.TrimSpace(raw[0])
		}
	}
	return v
}

// Result is the outcome of validating a submission.
type Result struct {
	Accepted bool
	Message  string
	Missing  []string
}

// Validate checks required fields and builds the confirmation message.
func (s Spec) Validate(v Values, subject string) Result {
	var missing []string
	for _, f := range s.Fields {
		if f.Required && v.Get(f.Name) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return Result{Message: s.Missing, Missing: missing}
	}
	msg := ""
	if s.confirm != nil {
		msg = s.confirm(v, strings.TrimSpace(subject))
	}
	return Result{Accepted: true, Message: msg}
}

// Booking is the lodging enquiry dialog.
var Booking = Spec{
	Kind:         "booking",
	IDPrefix:     "bk",
	DefaultTitle: "Start booking",
	SubmitLabel:  "Send request",
	Fields: []Field{
		{Name: "name", Label: "Full name", Type: "text", Placeholder: "e.g., Jamie Chen", Required: true},
		{Name: "email", Label: "Email", Type: "email", Placeholder: "you@example.com", Required: true},
		{Name: "arrival", Label: "Arrival", Type: "date"},
		{Name: "departure", Label: "Departure", Type: "date"},
		{Name: "party", Label: "Guests", Type: "number", Default: "2"},
		{Name: "type", Label: "Lodging type", Type: "select", Options: []string{"Any", "Hotel", "B&B", "Resort"}},
	},
	Missing: "Please enter your name and email.",
	confirm: func(v Values, stay string) string {
		note := ""
		if stay != "" {
			note = " regarding " + stay
		}
		return fmt.Sprintf("Thanks, %s! We'll follow up via %s%s with lodging options. (Demo)", v.Get("name"), v.Get("email"), note)
	},
}

// Reserve is the restaurant call/reserve dialog.
var Reserve = Spec{
	Kind:         "reserve",
	IDPrefix:     "rv",
	DefaultTitle: "Call/Reserve",
	SubmitLabel:  "Request table",
	Fields: []Field{
		{Name: "name", Label: "Full name", Type: "text", Placeholder: "e.g., Jamie Chen", Required: true},
		{Name: "phone", Label: "Phone", Type: "tel", Placeholder: "+1 808 555 0100", Required: true},
		{Name: "date", Label: "Date", Type: "date"},
		{Name: "time", Label: "Time", Type: "time"},
		{Name: "party", Label: "Party size", Type: "number", Default: "2"},
	},
	Missing: "Please enter your name and phone number.",
	confirm: func(v Values, venue string) string {
		when := ""
		if w := joinNonEmpty(v.Get("date"), v.Get("time")); w != "" {
			when = " for " + w
		}
		at := ""
		if venue != "" {
			at = " at " + venue
		}
		return fmt.Sprintf("Thanks, %s! We'll ask the venue to hold a table%s%s. We'll call %s to confirm. (Demo)", v.Get("name"), at, when, v.Get("phone"))
	},
}

// Contact is the general enquiry form on the contact page.
var Contact = Spec{
	Kind:        "contact",
	IDPrefix:    "ct",
	SubmitLabel: "Send message",
	Fields: []Field{
		{Name: "name", Label: "Full name", Type: "text", Placeholder: "e.g., Jamie Chen", Required: true},
		{Name: "email", Label: "Email", Type: "email", Placeholder: "you@example.com", Required: true},
		{Name: "subject", Label: "Subject", Type: "text", Placeholder: "Trip planning question"},
		{Name: "message", Label: "Message", Type: "textarea", Placeholder: "Tell us about your plans, dates, and interests...", Required: true},
	},
	Missing: "Please fill in your name, email, and message.",
	confirm: func(v Values, _ string) string {
		subject := v.Get("subject")
		if subject == "" {
			subject = "your trip"
		}
		return fmt.Sprintf("Thanks, %s! We received your message about \"%s\". We'll reply to %s. (Demo)", v.Get("name"), subject, v.Get("email"))
	},
}

// Lookup returns the dialog spec for kind.
func Lookup(kind string) (Spec, bool) {
	switch kind {
	case Booking.Kind:
		return Booking, true
	case Reserve.Kind:
		return Reserve, true
	}
	return Spec{}, false
}

func joinNonEmpty(values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, " ")
}
