package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexjbarnes/authmock/internal/keys"
	"github.com/alexjbarnes/authmock/internal/models"
)

const (
	// tokenSubject and tokenAudience are the claims stamped into JWTs
	// issued on the refresh_token grant.
	tokenSubject  = "user@kgateway.dev"
	tokenAudience = "account"

	maxRequestBody = 1 << 20
)

// HandleToken returns the /token handler. Behavior by grant_type:
//
//   - authorization_code: always succeeds. No client_secret required and
//     any code, redirect_uri, or code_verifier is accepted, which keeps
//     public-client and SPA inspectors using PKCE working against the
//     mock. Returns the fixed access and refresh tokens.
//   - refresh_token: requires the fixed client id and secret (from the
//     form body, or HTTP Basic auth when the body has no client_id).
//     Any refresh_token value is accepted. Returns a freshly signed JWT
//     plus the fixed refresh token.
//   - anything else: unsupported_grant_type.
func HandleToken(fx Fixture, signer *keys.Keys, logger *slog.Logger) http.HandlerFunc {
	expiresIn := int(keys.TokenTTL.Seconds())

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			WriteError(w, r, http.StatusNotFound, errNotFound)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

		// A malformed body degrades to an empty parameter set rather
		// than failing the request.
		_ = r.ParseForm()

		grantType := r.PostForm.Get("grant_type")
		clientID := r.PostForm.Get("client_id")
		clientSecret := r.PostForm.Get("client_secret")

		if clientID == "" {
			if id, secret, ok := r.BasicAuth(); ok {
				clientID, clientSecret = id, secret
			}
		}

		switch grantType {
		case "authorization_code":
			WriteJSON(w, r, http.StatusOK, models.TokenResponse{
				AccessToken:  fx.AccessToken,
				RefreshToken: fx.RefreshToken,
				TokenType:    "bearer",
				ExpiresIn:    expiresIn,
			})

		case "refresh_token":
			if clientID != fx.ClientID || clientSecret != fx.ClientSecret {
				logger.Warn("token: client auth failed", slog.String("client_id", clientID))
				WriteError(w, r, http.StatusBadRequest, errInvalidClient)

				return
			}

			access, err := signer.Sign(tokenSubject, tokenAudience, time.Now())
			if err != nil {
				logger.Error("token: signing failed", slog.String("error", err.Error()))
				WriteError(w, r, http.StatusInternalServerError, "server_error")

				return
			}

			WriteJSON(w, r, http.StatusOK, models.TokenResponse{
				AccessToken:  access,
				RefreshToken: fx.RefreshToken,
				TokenType:    "bearer",
				ExpiresIn:    expiresIn,
			})

		default:
			WriteError(w, r, http.StatusBadRequest, errUnsupportedGrantType)
		}
	}
}
