package server

import (
	"log"
	"mime"
	"net/http"
	"runtime/debug"

	"github.com/amityadav/modsearch/internal/gateway"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
)

// CreateHTTPHandler wraps the REST handler with compression, panic recovery,
// request IDs, CORS and the JSON content-type guard.
func CreateHTTPHandler(rest http.Handler) http.Handler {
	h := CreateJSONGuard(rest)
	h = CreateCORSHandler(h)
	h = CreateRequestIDHandler(h)
	h = CreateRecoveryHandler(h)
	return gzhttp.GzipHandler(h)
}

// CreateCORSHandler allows any origin to call the gateway
func CreateCORSHandler(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Search-Source")
		if origin != "*" {
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// CreateJSONGuard rejects POST requests that are not application/json before
// any route runs.
func CreateJSONGuard(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !isJSON(r.Header.Get("Content-Type")) {
			writeError(w, http.StatusBadRequest, "Content-Type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// CreateRequestIDHandler tags each request with an ID, reusing a valid
// X-Request-ID sent by the caller.
func CreateRequestIDHandler(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(gateway.WithRequestID(r.Context(), id)))
	}
}

// CreateRecoveryHandler wraps handler with panic recovery
func CreateRecoveryHandler(handler http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Printf("[PANIC RECOVERED] %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		handler.ServeHTTP(w, r)
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
