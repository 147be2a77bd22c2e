package e2e_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexjbarnes/authmock/internal/auth"
	"github.com/alexjbarnes/authmock/internal/keys"
	"github.com/alexjbarnes/authmock/internal/models"
	"github.com/alexjbarnes/authmock/internal/server"
)

const (
	testIssuer       = "https://kgateway.dev"
	testClientID     = "mcp_gi3APARn2_uHv2oxfJJqq2yZBDV4OyNo"
	testClientSecret = "secret_2nGx_bjvo9z72Aw3-hKTWMusEo2-yTfH"
	testAuthCode     = "fixed_auth_code_123"
	testAccessToken  = "fixed_access_token_abc"
	testRefreshToken = "fixed_refresh_token_123"
	testRedirectURI  = "http://localhost:8081/callback"
)

// harness holds the full e2e stack: a real HTTP server backed by the
// complete mux, exercised over the wire like a client under test would.
type harness struct {
	URL    string
	Keys   *keys.Keys
	Client *http.Client
}

// newHarness wires the full handler via server.NewMux and starts an
// httptest server.
func newHarness(t *testing.T) *harness {
	t.Helper()

	k, err := keys.LoadDefault(testIssuer)
	require.NoError(t, err)

	fx := auth.Fixture{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		AuthCode:     testAuthCode,
		AccessToken:  testAccessToken,
		RefreshToken: testRefreshToken,
		RedirectURI:  testRedirectURI,
	}

	store := auth.NewStore(&auth.Code{
		Code:        testAuthCode,
		ClientID:    testClientID,
		RedirectURI: testRedirectURI,
		Scope:       "openid profile",
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	})

	handler := server.NewMux(server.MuxConfig{
		Store:     store,
		Fixture:   fx,
		Keys:      k,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		IssuerURL: testIssuer,
		BaseURL:   "http://localhost:9000",
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &harness{
		URL:    srv.URL,
		Keys:   k,
		Client: srv.Client(),
	}
}

func (h *harness) doGet(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := h.Client.Get(h.URL + path)
	require.NoError(t, err)

	return resp
}

func (h *harness) doPostForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()

	resp, err := h.Client.Post(h.URL+path, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	require.NoError(t, err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

// tokenGrant runs a POST /token and decodes the success response.
func (h *harness) tokenGrant(t *testing.T, form url.Values) models.TokenResponse {
	t.Helper()

	resp := h.doPostForm(t, "/token", form)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return decodeBody[models.TokenResponse](t, resp)
}
