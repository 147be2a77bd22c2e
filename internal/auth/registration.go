package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexjbarnes/authmock/internal/models"
)

const (
	clientName        = "Test Client"
	clientDescription = "A test MCP client"
)

// HandleRegistration returns the /register handler. The request body is
// ignored entirely: registration always answers with the single fixed
// client and overwrites the stored record.
//
// Routing is keyed by method first, so a wrong-method hit on a known
// path falls through to the 404 body rather than a 405.
func HandleRegistration(store *Store, fx Fixture, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			WriteError(w, r, http.StatusNotFound, errNotFound)
			return
		}

		now := time.Now().Format(time.RFC3339Nano)
		reg := &models.ClientRegistration{
			ClientID:                fx.ClientID,
			ClientSecret:            fx.ClientSecret,
			ClientName:              clientName,
			ClientDescription:       clientDescription,
			RedirectURIs:            []string{fx.RedirectURI},
			GrantTypes:              []string{"authorization_code", "refresh_token"},
			ResponseTypes:           []string{"code"},
			TokenEndpointAuthMethod: "client_secret_basic",
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		store.RegisterClient(reg)

		logger.Debug("client registered", slog.String("client_id", reg.ClientID))
		WriteJSON(w, r, http.StatusOK, reg)
	}
}
