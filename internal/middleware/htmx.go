package middleware

import (
	"net/http"
	"strings"
)

// HTMXInfo captures the request headers htmx sends.
type HTMXInfo struct {
	Request    bool
	Boosted    bool
	Target     string
	Trigger    string
	CurrentURL string
}

// TargetsApp reports whether the swap target is the main #app region.
func (h HTMXInfo) TargetsApp() bool {
	return h.Request && strings.TrimPrefix(h.Target, "#") == "app"
}

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := HTMXInfo{
			Request:    r.Header.Get("HX-Request") == "true",
			Boosted:    r.Header.Get("HX-Boosted") == "true",
			Target:     r.Header.Get("HX-Target"),
			Trigger:    r.Header.Get("HX-Trigger"),
			CurrentURL: r.Header.Get("HX-Current-URL"),
		}
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), info)))
	})
}
