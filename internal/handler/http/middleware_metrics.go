package http

import "net/http"

// withRequestCount counts every request that reaches the router,
// including ones later rejected by the rate limiter or the not-found
// handler. Error responses are counted separately at the site that
// writes them, so a 409 full_required reply stays a regular response.
func (h *Handler) withRequestCount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}
