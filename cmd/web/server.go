package main

import (
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	handlersPkg "finitefield.org/taniti-web/internal/handlers"
	"finitefield.org/taniti-web/internal/dataset"
	mw "finitefield.org/taniti-web/internal/middleware"
	"finitefield.org/taniti-web/internal/platform/observability"
	"finitefield.org/taniti-web/internal/site"
)

const requestTimeout = 30 * time.Second

// server holds everything a request handler reads.
type server struct {
	logger   *zap.Logger
	store    *dataset.Store
	content  site.Content
	pages    *site.Registry
	views    *views
	layout   handlersPkg.Layout
	sessions *mw.Sessions
	assets   fs.FS
	metrics  *observability.Metrics
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	r.Use(middleware.RealIP)
	r.Use(observability.InjectLoggerMiddleware(s.logger))
	r.Use(observability.TraceMiddleware())
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(s.metrics.Middleware())
	r.Use(observability.RecoveryMiddleware(s.logger))
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(mw.HTMX)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(s.assets)))

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Use(mw.CSRF(s.sessions.Secure()))

		r.Post("/stay/filters", s.StayFiltersHandler)
		r.Post("/dining/filters", s.DiningFiltersHandler)

		r.Get("/modals/{kind}", s.ModalOpenHandler)
		r.Post("/modals/{kind}", s.ModalSubmitHandler)
		r.Post("/modals/{kind}/close", s.ModalCloseHandler)
		r.Post("/modals/{kind}/clear", s.ModalClearHandler)
		r.Post("/contact", s.ContactSubmitHandler)

		r.Get("/itinerary/{id}/print.pdf", s.ItineraryPDFHandler)

		r.Get("/", s.PageHandler)
		r.Get("/*", s.PageHandler)
	})
	return r
}
