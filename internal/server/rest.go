package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/amityadav/modsearch/internal/gateway"
)

const maxBodyBytes = 1 << 20

// CreateRESTHandler creates the gateway's REST endpoints
func CreateRESTHandler(d *gateway.Dispatcher, serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search", "/codebase_search":
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			handleSearch(w, r, d)
		case "/health":
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			handleHealth(w, serviceName)
		default:
			writeError(w, http.StatusNotFound, "not found")
		}
	}
}

func handleSearch(w http.ResponseWriter, r *http.Request, d *gateway.Dispatcher) {
	resp, apiErr := search(r, d)
	if apiErr != nil {
		writeError(w, apiErr.status, apiErr.message)
		return
	}
	w.Header().Set("X-Search-Source", resp.Source)
	writeJSON(w, http.StatusOK, resp)
}

// search runs one request through validation, dispatch and normalization.
// Every failure is returned as an apiError; nothing else writes the response.
func search(r *http.Request, d *gateway.Dispatcher) (*SearchResponse, *apiError) {
	query, apiErr := parseQuery(r)
	if apiErr != nil {
		log.Printf("[REST] %s: rejected request: %s", gateway.RequestIDFrom(r.Context()), apiErr.message)
		return nil, apiErr
	}

	log.Printf("[REST] %s: processing query: %q", gateway.RequestIDFrom(r.Context()), query)

	results, outcome, err := d.Search(r.Context(), query)
	if err != nil {
		log.Printf("[REST] %s: normalization failed (%s path): %v", gateway.RequestIDFrom(r.Context()), outcome.Kind(), err)
		return nil, &apiError{status: http.StatusInternalServerError, message: err.Error()}
	}

	log.Printf("[REST] %s: returning %d results (%s)", gateway.RequestIDFrom(r.Context()), len(results), outcome.Kind())
	resp := NewSearchResponse(query, results)
	resp.Source = outcome.Kind().String()
	return &resp, nil
}

func parseQuery(r *http.Request) (string, *apiError) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		return "", &apiError{status: http.StatusBadRequest, message: "Invalid or missing JSON"}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return "", &apiError{status: http.StatusBadRequest, message: "Invalid or missing JSON"}
	}

	query, ok := payload["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", &apiError{status: http.StatusBadRequest, message: "query field is required"}
	}
	return query, nil
}

func handleHealth(w http.ResponseWriter, serviceName string) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success: true,
		Status:  "ok",
		Service: serviceName,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed+", OPTIONS")
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
