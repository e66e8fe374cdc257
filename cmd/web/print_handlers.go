package main

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/printout"
)

// ItineraryPDFHandler serves a printable copy of one itinerary.
func (s *server) ItineraryPDFHandler(w http.ResponseWriter, r *http.Request) {
	it, ok := s.store.Current().Data.Itinerary(chi.URLParam(r, "id"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "itinerary not found")
		return
	}
	var buf bytes.Buffer
	if err := printout.Itinerary(&buf, it, time.Now()); err != nil {
		observability.FromContext(r.Context()).Error("itinerary pdf failed", zap.String("itinerary", it.ID), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+printout.Filename(it)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
