package main

import (
	"finitefield.org/taniti-web/internal/forms"
)

// FormView is the template model for the dialogs and the contact form.
type FormView struct {
	Kind        string
	IDPrefix    string
	Title       string
	CSRF        string
	ReturnFocus string
	Subject     string
	Message     string
	Fields      []FieldView
	SubmitLabel string
	Accepted    bool
	Reference   string
}

// FieldView is one rendered input.
type FieldView struct {
	forms.Field
	ID        string
	Value     string
	Invalid   bool
	Autofocus bool
}

// ToastView confirms an accepted dialog submission.
type ToastView struct {
	Message   string
	Reference string
}

func fieldViews(spec forms.Spec, values forms.Values, res forms.Result) []FieldView {
	missing := map[string]bool{}
	for _, m := range res.Missing {
		missing[m] = true
	}
	out := make([]FieldView, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		out = append(out, FieldView{
			Field:   f,
			ID:      spec.FieldID(f.Name),
			Value:   values[f.Name],
			Invalid: missing[f.Name],
		})
	}
	return out
}

// dialogView renders d as it currently stands. Focus lands on the first
// invalid field after a rejected submit, else on the first field.
func dialogView(d *forms.Dialog, csrf string) FormView {
	spec := d.Spec()
	res := d.Result()
	fields := fieldViews(spec, d.Values(), res)
	focus := -1
	for i, f := range fields {
		if f.Invalid {
			focus = i
			break
		}
	}
	if focus < 0 && len(fields) > 0 && fields[0].ID == d.FirstFieldID() {
		focus = 0
	}
	if focus >= 0 {
		fields[focus].Autofocus = true
	}
	return FormView{
		Kind:        spec.Kind,
		IDPrefix:    spec.IDPrefix,
		Title:       d.Title(),
		CSRF:        csrf,
		ReturnFocus: d.ReturnFocus(),
		Subject:     d.Subject(),
		Message:     res.Message,
		Fields:      fields,
		SubmitLabel: spec.SubmitLabel,
	}
}

func contactView(csrf string, values forms.Values, res forms.Result, ref string) FormView {
	spec := forms.Contact
	if res.Accepted {
		values = spec.Defaults()
	}
	return FormView{
		Kind:        spec.Kind,
		IDPrefix:    spec.IDPrefix,
		CSRF:        csrf,
		Message:     res.Message,
		Fields:      fieldViews(spec, values, res),
		SubmitLabel: spec.SubmitLabel,
		Accepted:    res.Accepted,
		Reference:   ref,
	}
}
