package auth

import (
	"net/http"

	"github.com/alexjbarnes/authmock/internal/keys"
)

// ServerMetadata is the RFC 8414 discovery response.
type ServerMetadata struct {
	Issuer                            string   `json:"issuer"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	JWKSURI                           string   `json:"jwks_uri"`
	RegistrationEndpoint              string   `json:"registration_endpoint"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	CodeChallengeMethodsSupported     []string `json:"code_challenge_methods_supported"`
}

// HandleServerMetadata returns the /.well-known/oauth-authorization-server
// handler. The document is entirely static: issuer from configuration,
// endpoint URLs built off the configured base URL.
func HandleServerMetadata(issuer, baseURL string) http.HandlerFunc {
	meta := ServerMetadata{
		Issuer:                            issuer,
		AuthorizationEndpoint:             baseURL + "/authorize",
		TokenEndpoint:                     baseURL + "/token",
		JWKSURI:                           baseURL + "/.well-known/jwks.json",
		RegistrationEndpoint:              baseURL + "/register",
		ResponseTypesSupported:            []string{"code"},
		GrantTypesSupported:               []string{"authorization_code", "refresh_token"},
		TokenEndpointAuthMethodsSupported: []string{"none", "client_secret_basic", "client_secret_post"},
		CodeChallengeMethodsSupported:     []string{"S256"},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, r, http.StatusNotFound, errNotFound)
			return
		}

		WriteJSON(w, r, http.StatusOK, meta)
	}
}

// HandleJWKS returns the /.well-known/jwks.json handler, serving the
// static public key set.
func HandleJWKS(k *keys.Keys) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, r, http.StatusNotFound, errNotFound)
			return
		}

		WriteJSON(w, r, http.StatusOK, k.JWKS())
	}
}
