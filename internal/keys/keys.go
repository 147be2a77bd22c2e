// Package keys loads the signing keypair and issues RS256 JWTs.
//
// The keypair is a fixed RSA private key in JWK format, read from a file
// or falling back to an embedded default. It is parsed once at startup
// and immutable for the process lifetime.
package keys

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	_ "embed"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/alexjbarnes/authmock/internal/errors"
)

//go:embed default_jwk.json
var defaultJWK []byte

// TokenTTL is the lifetime stamped into issued JWTs.
const TokenTTL = time.Hour

// Keys holds the process signing key and its published verification set.
type Keys struct {
	issuer  string
	private *rsa.PrivateKey
	keyID   string
	jwks    jose.JSONWebKeySet
}

// Load reads a private RSA JWK from path.
func Load(path, issuer string) (*Keys, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading JWK file: %w", err)
	}

	k, err := New(data, issuer)
	if err != nil {
		return nil, fmt.Errorf("parsing JWK file %s: %w", path, err)
	}

	return k, nil
}

// LoadDefault parses the embedded default keypair.
func LoadDefault(issuer string) (*Keys, error) {
	return New(defaultJWK, issuer)
}

// New parses a private RSA JWK document and derives the public key set
// served by the JWKS endpoint.
func New(jwkJSON []byte, issuer string) (*Keys, error) {
	var key jose.JSONWebKey
	if err := key.UnmarshalJSON(jwkJSON); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrKeyParse, err)
	}

	private, ok := key.Key.(*rsa.PrivateKey)
	if !ok {
		return nil, apperrors.ErrKeyNotRSA
	}

	return &Keys{
		issuer:  issuer,
		private: private,
		keyID:   key.KeyID,
		jwks:    jose.JSONWebKeySet{Keys: []jose.JSONWebKey{key.Public()}},
	}, nil
}

// JWKS returns the public key set.
func (k *Keys) JWKS() jose.JSONWebKeySet {
	return k.jwks
}

// KeyID returns the kid of the signing key, or "" when the key has none.
func (k *Keys) KeyID() string {
	return k.keyID
}

// Public returns the RSA public key corresponding to the signing key.
func (k *Keys) Public() *rsa.PublicKey {
	return &k.private.PublicKey
}

// Sign issues a compact RS256 JWT with iss, sub, aud, iat=now and
// exp=now+TokenTTL. The claim layout matches what verification-side
// tooling expects: aud as a plain string, Unix second timestamps.
func (k *Keys) Sign(sub, aud string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss": k.issuer,
		"sub": sub,
		"aud": aud,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if k.keyID != "" {
		token.Header["kid"] = k.keyID
	}

	return token.SignedString(k.private)
}
