package forms

import (
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ErrClosed is returned when submitting to a dialog that is not open.
var ErrClosed = errors.New("forms: dialog is closed")

// Trigger describes the control that opened a dialog.
type Trigger struct {
	// FocusID is the DOM id that regains focus when the dialog closes.
	FocusID string
	// Subject names the stay or venue the dialog is about, if known.
	Subject string
}

// SubjectLookup resolves an entity reference such as "stay:sunrise" to a title.
type SubjectLookup interface {
	EntityTitle(kind, id string) (string, bool)
}

// InferSubject picks the dialog subject: an explicit name wins, then the
// entity referenced by the trigger's card, else none.
func InferSubject(explicit, ref string, lookup SubjectLookup) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	kind, id, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok || lookup == nil || id == "" {
		return ""
	}
	title, _ := lookup.EntityTitle(kind, id)
	return title
}

// Dialog is a modal form controller. It moves closed -> open -> closed and
// always hands focus back to the element that opened it.
type Dialog struct {
	spec        Spec
	open        bool
	subject     string
	returnFocus string
	values      Values
	result      Result
	newRef      func() string
}

// NewDialog returns a closed dialog for spec.
func NewDialog(spec Spec) *Dialog {
	return &Dialog{spec: spec, values: spec.Defaults(), newRef: func() string { return ulid.Make().String() }}
}

// Spec returns the dialog's form spec.
func (d *Dialog) Spec() Spec { return d.spec }

// Open records the trigger and opens the dialog. Reopening replaces the
// previous subject and focus target.
func (d *Dialog) Open(t Trigger) {
	d.subject = strings.TrimSpace(t.Subject)
	d.returnFocus = strings.TrimSpace(t.FocusID)
	d.values = d.spec.Defaults()
	d.result = Result{}
	d.open = true
}

// IsOpen reports whether the dialog is open.
func (d *Dialog) IsOpen() bool { return d.open }

// Subject returns the captured subject.
func (d *Dialog) Subject() string { return d.subject }

// ReturnFocus returns the element id focus goes back to on close.
func (d *Dialog) ReturnFocus() string { return d.returnFocus }

// Title is the default title, suffixed with the subject when known.
func (d *Dialog) Title() string {
	if d.subject == "" {
		return d.spec.DefaultTitle
	}
	return d.spec.DefaultTitle + " — " + d.subject
}

// FirstFieldID is the element that receives focus when the dialog opens.
func (d *Dialog) FirstFieldID() string {
	if len(d.spec.Fields) == 0 {
		return ""
	}
	return d.spec.FieldID(d.spec.Fields[0].Name)
}

// Values returns the current field values.
func (d *Dialog) Values() Values { return d.values }

// Result returns the last submission result.
func (d *Dialog) Result() Result { return d.result }

// Clear restores field defaults and keeps the dialog open.
func (d *Dialog) Clear() {
	d.values = d.spec.Defaults()
	d.result = Result{}
}

// Close resets the dialog and returns the focus target recorded on open.
// Close control, overlay click and Escape all end here.
func (d *Dialog) Close() string {
	focus := d.returnFocus
	d.open = false
	d.subject = ""
	d.returnFocus = ""
	d.values = d.spec.Defaults()
	d.result = Result{}
	return focus
}

// Submission is an accepted dialog submission.
type Submission struct {
	Message   string
	Reference string
	// FocusID is where focus returns now that the dialog has closed.
	FocusID string
}

// Submit validates v. A rejected submission leaves the dialog open with the
// problem recorded; an accepted one closes it.
func (d *Dialog) Submit(v Values) (Submission, bool, error) {
	if !d.open {
		return Submission{}, false, ErrClosed
	}
	d.values = v
	d.result = d.spec.Validate(v, d.subject)
	if !d.result.Accepted {
		return Submission{}, false, nil
	}
	sub := Submission{Message: d.result.Message, Reference: d.newRef()}
	sub.FocusID = d.Close()
	return sub, true, nil
}

// Missing reports whether field name failed validation in the last submit.
func (d *Dialog) Missing(name string) bool {
	for _, m := range d.result.Missing {
		if m == name {
			return true
		}
	}
	return false
}
