package middleware

import "net/http"

// hookWriter runs a callback once, before the status line is written.
type hookWriter struct {
	http.ResponseWriter
	before func(http.ResponseWriter)
	fired  bool
}

func newHookWriter(w http.ResponseWriter, before func(http.ResponseWriter)) *hookWriter {
	return &hookWriter{ResponseWriter: w, before: before}
}

func (hw *hookWriter) flushHook() {
	if !hw.fired {
		hw.fired = true
		hw.before(hw.ResponseWriter)
	}
}

func (hw *hookWriter) WriteHeader(statusCode int) {
	hw.flushHook()
	hw.ResponseWriter.WriteHeader(statusCode)
}

func (hw *hookWriter) Write(b []byte) (int, error) {
	hw.flushHook()
	return hw.ResponseWriter.Write(b)
}

func (hw *hookWriter) Flush() {
	hw.flushHook()
	if f, ok := hw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (hw *hookWriter) Unwrap() http.ResponseWriter { return hw.ResponseWriter }
