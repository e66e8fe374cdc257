package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

type titles map[string]string

func (t titles) EntityTitle(kind, id string) (string, bool) {
	v, ok := t[kind+":"+id]
	return v, ok
}

func fixedRef(d *Dialog) *Dialog {
	d.newRef = func() string { return "01TESTREF" }
	return d
}

func TestOpenThenCloseRestoresFocus(t *testing.T) {
	d := NewDialog(Booking)
	require.False(t, d.IsOpen())

	d.Open(Trigger{FocusID: "book-sunrise", Subject: "Sunrise B&B"})
	require.True(t, d.IsOpen())
	require.Equal(t, "Start booking — Sunrise B&B", d.Title())
	require.Equal(t, "bk-name", d.FirstFieldID())

	require.Equal(t, "book-sunrise", d.Close())
	require.False(t, d.IsOpen())
	require.Equal(t, "Start booking", d.Title())
	require.Empty(t, d.Subject())
}

func TestTitleWithoutSubject(t *testing.T) {
	d := NewDialog(Reserve)
	d.Open(Trigger{FocusID: "reserve-btn"})
	require.Equal(t, "Call/Reserve", d.Title())
}

func TestSubmitMissingRequiredKeepsDialogOpen(t *testing.T) {
	d := fixedRef(NewDialog(Booking))
	d.Open(Trigger{FocusID: "hero-book"})

	sub, ok, err := d.Submit(Values{"name": "Jamie", "email": "   "})
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, sub.Message)
	require.True(t, d.IsOpen())
	require.Equal(t, "hero-book", d.ReturnFocus())
	require.Equal(t, "Please enter your name and email.", d.Result().Message)
	require.True(t, d.Missing("email"))
	require.False(t, d.Missing("name"))
	require.Equal(t, "Jamie", d.Values().Get("name"))
}

func TestBookingConfirmation(t *testing.T) {
	d := fixedRef(NewDialog(Booking))
	d.Open(Trigger{FocusID: "book-sunrise", Subject: "Sunrise B&B"})

	sub, ok, err := d.Submit(Values{"name": "Jamie", "email": "jamie@example.com"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Thanks, Jamie! We'll follow up via jamie@example.com regarding Sunrise B&B with lodging options. (Demo)", sub.Message)
	require.Equal(t, "01TESTREF", sub.Reference)
	require.Equal(t, "book-sunrise", sub.FocusID)
	require.False(t, d.IsOpen())
}

func TestReserveConfirmation(t *testing.T) {
	d := fixedRef(NewDialog(Reserve))
	d.Open(Trigger{FocusID: "r1", Subject: "Reef & Rice"})
	sub, ok, err := d.Submit(Values{"name": "Sam", "phone": "555-0100", "date": "2026-03-04", "time": "19:30"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Thanks, Sam! We'll ask the venue to hold a table at Reef & Rice for 2026-03-04 19:30. We'll call 555-0100 to confirm. (Demo)", sub.Message)

	d.Open(Trigger{FocusID: "r2"})
	sub, ok, err = d.Submit(Values{"name": "Sam", "phone": "555-0100"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Thanks, Sam! We'll ask the venue to hold a table. We'll call 555-0100 to confirm. (Demo)", sub.Message)
}

func TestSubmitClosedDialog(t *testing.T) {
	_, _, err := NewDialog(Booking).Submit(Values{"name": "a", "email": "b"})
	require.ErrorIs(t, err, ErrClosed)
}

func TestClearRestoresDefaults(t *testing.T) {
	d := NewDialog(Reserve)
	d.Open(Trigger{FocusID: "x"})
	_, _, err := d.Submit(Values{"name": "Sam", "party": "6"})
	require.NoError(t, err)
	d.Clear()
	require.True(t, d.IsOpen())
	require.Equal(t, "2", d.Values().Get("party"))
	require.Empty(t, d.Values().Get("name"))
	require.Empty(t, d.Result().Missing)
}

func TestInferSubject(t *testing.T) {
	lookup := titles{"stay:sunrise": "Sunrise B&B"}
	require.Equal(t, "Explicit", InferSubject("Explicit", "stay:sunrise", lookup))
	require.Equal(t, "Sunrise B&B", InferSubject("", "stay:sunrise", lookup))
	require.Empty(t, InferSubject("", "stay:missing", lookup))
	require.Empty(t, InferSubject("", "garbage", lookup))
	require.Empty(t, InferSubject("", "", nil))
}

func TestContactValidation(t *testing.T) {
	res := Contact.Validate(ValuesFrom(Contact, url.Values{"name": {"Ana"}, "email": {"ana@example.com"}}), "")
	require.False(t, res.Accepted)
	require.Equal(t, []string{"message"}, res.Missing)
	require.Equal(t, "Please fill in your name, email, and message.", res.Message)

	res = Contact.Validate(ValuesFrom(Contact, url.Values{"name": {" Ana "}, "email": {"ana@example.com"}, "message": {"Hi"}}), "")
	require.True(t, res.Accepted)
	require.Equal(t, `Thanks, Ana! We received your message about "your trip". We'll reply to ana@example.com. (Demo)`, res.Message)
}

func TestLookup(t *testing.T) {
	spec, ok := Lookup("reserve")
	require.True(t, ok)
	require.Equal(t, "rv-phone", spec.FieldID("phone"))
	_, ok = Lookup("contact")
	require.False(t, ok)
}
