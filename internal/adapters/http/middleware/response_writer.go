// Package middleware provides HTTP middleware for the inbound request pipeline.
//
// The global pipeline, as returned by Standard, runs in this order:
//
//	Recovery → RequestID → OpenTelemetry → Logging → Handler
//
// CommitRateLimit is applied per route to the explicit commit endpoint.
package middleware

import "net/http"

// responseRecorder wraps http.ResponseWriter and records the status code
// and body size sent by the handler. One recorder is shared by every
// middleware in the pipeline; recordResponse returns the existing one when
// the writer is already wrapped.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	written     int64
}

func recordResponse(w http.ResponseWriter) *responseRecorder {
	if rec, ok := w.(*responseRecorder); ok {
		return rec
	}
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code. Later calls are dropped
// rather than forwarded, so net/http does not log superfluous writes.
func (rec *responseRecorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	rec.wroteHeader = true
	n, err := rec.ResponseWriter.Write(b)
	rec.written += int64(n)
	return n, err
}

// Status returns the status code sent, or 200 if the handler wrote a body
// without calling WriteHeader.
func (rec *responseRecorder) Status() int { return rec.status }

// Committed reports whether the response headers have gone out. After that
// the status can no longer be changed.
func (rec *responseRecorder) Committed() bool { return rec.wroteHeader }

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *responseRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
