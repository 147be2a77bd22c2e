package auth

import (
	"fmt"
	"log/slog"
	"net/http"
)

// HandleAuthorize returns the /authorize handler. The mock does not
// issue an HTTP redirect; it reports the callback target as JSON and
// the client under test follows it itself.
func HandleAuthorize(fx Fixture, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, r, http.StatusNotFound, errNotFound)
			return
		}

		q := r.URL.Query()
		clientID := q.Get("client_id")
		redirectURI := q.Get("redirect_uri")

		if clientID != fx.ClientID {
			logger.Warn("authorize: unknown client", slog.String("client_id", clientID))
			WriteError(w, r, http.StatusBadRequest, errInvalidClient)

			return
		}

		callbackURL := fmt.Sprintf("%s?code=%s", redirectURI, fx.AuthCode)
		WriteJSON(w, r, http.StatusOK, map[string]string{"redirect_to": callbackURL})
	}
}
