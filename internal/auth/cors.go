package auth

import (
	"encoding/json"
	"net/http"
)

// OAuth error codes the mock can return. No other failure shapes exist;
// everything else is accepted permissively.
const (
	errInvalidClient        = "invalid_client"
	errUnsupportedGrantType = "unsupported_grant_type"
	errNotFound             = "not_found"
)

// applyCORS sets the CORS headers carried by every JSON response. The
// specific Origin is echoed for credentialed requests, falling back to
// "*" when the request has none.
func applyCORS(w http.ResponseWriter, r *http.Request, defaultHeaders string) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}

	requestHeaders := r.Header.Get("Access-Control-Request-Headers")
	if requestHeaders == "" {
		requestHeaders = defaultHeaders
	}

	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Vary", "Origin")
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Headers", requestHeaders)
}

// WriteJSON writes v as an application/json response with CORS headers.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	applyCORS(w, r, "content-type, authorization")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the single-field error body shared by all failure
// paths.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code string) {
	WriteJSON(w, r, status, map[string]string{"error": code})
}

// HandlePreflight answers CORS preflight on any path with 204 and no
// body.
func HandlePreflight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyCORS(w, r, "content-type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleNotFound answers unrecognized routes with the JSON 404 body.
func HandleNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, errNotFound)
	}
}
