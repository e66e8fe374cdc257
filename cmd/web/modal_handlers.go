package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"finitefield.org/taniti-web/internal/forms"
	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/site"
)

// dialogFromRequest rebuilds the open dialog from the hidden inputs the modal
// markup carries between requests.
func dialogFromRequest(w http.ResponseWriter, r *http.Request) (*forms.Dialog, bool) {
	spec, ok := forms.Lookup(chi.URLParam(r, "kind"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown dialog")
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return nil, false
	}
	d := forms.NewDialog(spec)
	d.Open(forms.Trigger{
		FocusID: r.PostForm.Get("return_focus"),
		Subject: r.PostForm.Get("subject"),
	})
	return d, true
}

// ModalOpenHandler renders a dialog into #modal-root. The trigger passes the
// element to refocus on close and optionally the card it belongs to.
func (s *server) ModalOpenHandler(w http.ResponseWriter, r *http.Request) {
	spec, ok := forms.Lookup(chi.URLParam(r, "kind"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown dialog")
		return
	}
	q := r.URL.Query()
	d := forms.NewDialog(spec)
	d.Open(forms.Trigger{
		FocusID: q.Get("focus"),
		Subject: forms.InferSubject(q.Get("subject"), q.Get("ref"), s.store.Current().Data),
	})
	s.renderDialog(w, r, http.StatusOK, d)
}

// ModalSubmitHandler validates a dialog submission. Rejected submissions
// re-render the open dialog with 422; accepted ones close it with a toast.
func (s *server) ModalSubmitHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := dialogFromRequest(w, r)
	if !ok {
		return
	}
	sub, accepted, err := d.Submit(forms.ValuesFrom(d.Spec(), r.PostForm))
	if err != nil {
		mw.WriteError(w, r, http.StatusConflict, err.Error())
		return
	}
	s.metrics.DialogSubmitted(r.Context(), d.Spec().Kind, accepted)
	if !accepted {
		s.renderDialog(w, r, http.StatusUnprocessableEntity, d)
		return
	}
	observability.FromContext(r.Context()).Info("dialog submitted",
		zap.String("dialog", d.Spec().Kind),
		zap.String("reference", sub.Reference),
	)
	setModalClosed(w, r, sub.FocusID)
	writeHTML(w, r, http.StatusOK, func(out io.Writer) error {
		return s.views.fragment(out, "modal_confirm", ToastView{Message: sub.Message, Reference: sub.Reference})
	})
}

// ModalCloseHandler empties #modal-root and names the element to refocus.
// The close button, an overlay click and Escape all post here.
func (s *server) ModalCloseHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := dialogFromRequest(w, r)
	if !ok {
		return
	}
	setModalClosed(w, r, d.Close())
	w.WriteHeader(http.StatusOK)
}

// ModalClearHandler restores field defaults without closing the dialog.
func (s *server) ModalClearHandler(w http.ResponseWriter, r *http.Request) {
	d, ok := dialogFromRequest(w, r)
	if !ok {
		return
	}
	d.Clear()
	s.renderDialog(w, r, http.StatusOK, d)
}

func (s *server) renderDialog(w http.ResponseWriter, r *http.Request, status int, d *forms.Dialog) {
	view := dialogView(d, mw.CSRFToken(r))
	writeHTML(w, r, status, func(out io.Writer) error {
		return s.views.fragment(out, "modal", view)
	})
}

func newReference() string { return ulid.Make().String() }

func setModalClosed(w http.ResponseWriter, r *http.Request, focus string) {
	payload := map[string]any{
		"modal:closed": map[string]string{"focus": focus},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		observability.FromContext(r.Context()).Warn("encode HX-Trigger", zap.Error(err))
		return
	}
	w.Header().Set("HX-Trigger", string(raw))
}

// ContactSubmitHandler validates the contact form. htmx swaps only the form;
// plain posts get the whole contact page back.
func (s *server) ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	spec := forms.Contact
	values := forms.ValuesFrom(spec, r.PostForm)
	res := spec.Validate(values, "")
	s.metrics.DialogSubmitted(r.Context(), spec.Kind, res.Accepted)
	ref := ""
	status := http.StatusUnprocessableEntity
	if res.Accepted {
		ref = newReference()
		status = http.StatusOK
		observability.FromContext(r.Context()).Info("contact message received", zap.String("reference", ref))
	}
	view := contactView(mw.CSRFToken(r), values, res, ref)

	if mw.IsHTMX(r.Context()) && !mw.HTMXFromContext(r.Context()).TargetsApp() {
		writeHTML(w, r, status, func(out io.Writer) error {
			return s.views.fragment(out, "contact_form", view)
		})
		return
	}
	p := s.pages.Dispatch(s.state(r), site.Route{Name: "contact"})
	p.Status = status
	s.renderPage(w, r, p, view)
}
