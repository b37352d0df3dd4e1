package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/cardsync/internal/logger"
)

// responseWriter records the status code and body size flowing through
// it so the access log can report them after the handler returns.
// WriteHeader reaches the wrapped writer exactly once; a Write without
// a prior WriteHeader counts as an implicit 200, matching net/http.
type responseWriter struct {
	http.ResponseWriter

	status      int
	size        int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}

	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// withLogging emits one access-log entry per request: method, URI,
// remote address, final status, response size and handling duration.
// The remote address makes 429 responses traceable to the client that
// exhausted its rate-limit bucket.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		// Capture before the handler runs; it may rewrite the request.
		uri := r.RequestURI
		method := r.Method
		remote := r.RemoteAddr

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", method).
			Str("uri", uri).
			Str("remote", remote).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
