// Provides HTTP middleware and response writers for rate limiting.

package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Tier is a named limiter applied to a group of routes.
type Tier struct {
	Name    string
	Limiter *Limiter
}

// Middleware limits requests through next, one bucket per client key as
// computed by keyFunc (typically the client IP). Rate limit headers are
// written on every response; rejected requests get a 429 JSON payload.
func (t *Tier) Middleware(keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := t.Limiter.Allow(t.Name + ":" + keyFunc(r))
			rw := newResponseWriter(w, result)
			if !result.Allowed {
				writeRateLimitError(rw, result)
				return
			}
			next.ServeHTTP(rw, r)
		})
	}
}

// WriteHeaders writes rate limit headers to the response.
func WriteHeaders(w http.ResponseWriter, result Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	// Retry-After only on 429 responses.
	if !result.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
	}
}

// writeRateLimitError writes the 429 error payload.
func writeRateLimitError(w http.ResponseWriter, result Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    "RATE_LIMITED",
			"message": "Too many requests, retry later",
		},
	})
}

// responseWriter wraps http.ResponseWriter to inject rate limit headers
// before any response is written.
type responseWriter struct {
	http.ResponseWriter
	result      Result
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter, result Result) *responseWriter {
	return &responseWriter{ResponseWriter: w, result: result}
}

// WriteHeader injects rate limit headers before writing the status code.
func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.wroteHeader {
		WriteHeaders(rw.ResponseWriter, rw.result)
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write ensures headers are written before any body content.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		WriteHeaders(rw.ResponseWriter, rw.result)
		rw.wroteHeader = true
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for middleware that needs it.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
