package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/amityadav/modsearch/internal/gateway"
)

// SearchResponse is the success envelope of the search routes.
type SearchResponse struct {
	Success bool             `json:"success"`
	Query   string           `json:"query"`
	Results []gateway.Result `json:"results"`
	Count   int              `json:"count"`

	// Source is "backend" or "fallback"; sent as a header, not in the body.
	Source string `json:"-"`
}

// NewSearchResponse builds a success envelope; Count always equals len(Results).
func NewSearchResponse(query string, results []gateway.Result) SearchResponse {
	if results == nil {
		results = []gateway.Result{}
	}
	return SearchResponse{
		Success: true,
		Query:   query,
		Results: results,
		Count:   len(results),
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Service string `json:"service"`
}

// apiError is a failure that crosses the pipeline boundary to the caller.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("[REST] Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
