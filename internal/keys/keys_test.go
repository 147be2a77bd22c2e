package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexjbarnes/authmock/internal/errors"
)

const testIssuer = "https://kgateway.dev"

func TestLoadDefault(t *testing.T) {
	k, err := LoadDefault(testIssuer)
	require.NoError(t, err)

	assert.Equal(t, "5333780687551038659", k.KeyID())
	require.Len(t, k.JWKS().Keys, 1)
	assert.Equal(t, "5333780687551038659", k.JWKS().Keys[0].KeyID)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, defaultJWK, 0o600))

	k, err := Load(path, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "5333780687551038659", k.KeyID())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), testIssuer)
	require.Error(t, err)
}

func TestNew_InvalidJSON(t *testing.T) {
	_, err := New([]byte("{not json"), testIssuer)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrKeyParse)
}

func TestNew_NonRSAKey(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	data, err := (&jose.JSONWebKey{Key: ecKey, KeyID: "ec"}).MarshalJSON()
	require.NoError(t, err)

	_, err = New(data, testIssuer)
	assert.ErrorIs(t, err, apperrors.ErrKeyNotRSA)
}

func TestJWKS_OmitsPrivateMaterial(t *testing.T) {
	k, err := LoadDefault(testIssuer)
	require.NoError(t, err)

	data, err := json.Marshal(k.JWKS())
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc["keys"], 1)

	jwk := doc["keys"][0]
	assert.Contains(t, jwk, "n")
	assert.Contains(t, jwk, "e")
	assert.NotContains(t, jwk, "d")
	assert.NotContains(t, jwk, "p")
	assert.NotContains(t, jwk, "q")
}

func TestSign_ClaimsAndSignature(t *testing.T) {
	k, err := LoadDefault(testIssuer)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	signed, err := k.Sign("user@kgateway.dev", "account", now)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return k.Public(), nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "5333780687551038659", token.Header["kid"])
	assert.Equal(t, testIssuer, claims["iss"])
	assert.Equal(t, "user@kgateway.dev", claims["sub"])
	assert.Equal(t, "account", claims["aud"])
	assert.Equal(t, float64(now.Unix()), claims["iat"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])
}

func TestSign_VerifiesAgainstJWKS(t *testing.T) {
	k, err := LoadDefault(testIssuer)
	require.NoError(t, err)

	signed, err := k.Sign("user@kgateway.dev", "account", time.Now())
	require.NoError(t, err)

	// Verify using the key exactly as the JWKS endpoint publishes it.
	pub := k.JWKS().Keys[0]
	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return pub.Key, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)
}

func TestGenerate_RoundTrip(t *testing.T) {
	private, public, err := Generate("test-kid")
	require.NoError(t, err)
	assert.Equal(t, "test-kid", private.KeyID)
	assert.Equal(t, "test-kid", public.KeyID)

	data, err := private.MarshalJSON()
	require.NoError(t, err)

	k, err := New(data, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "test-kid", k.KeyID())

	signed, err := k.Sign("someone", "account", time.Now())
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return public.Key, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)
}
