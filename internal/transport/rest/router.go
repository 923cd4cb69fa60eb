package rest

import "net/http"

// NewRouter registers all REST routes on a fresh mux. Middleware is applied
// by the caller around the returned handler.
func NewRouter(lookup *LookupHandler, vocab *VocabHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/lookup", lookup.Lookup)
	mux.HandleFunc("POST /v1/saved/toggle", vocab.Toggle)
	mux.HandleFunc("GET /v1/saved", vocab.List)
	mux.HandleFunc("PUT /v1/saved/{id}/tags", vocab.UpdateTags)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	return mux
}
