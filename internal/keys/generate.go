package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"
)

// Generate creates a fresh 2048-bit RSA keypair and returns it as a
// private/public JWK pair under the given kid. Used by the genkey
// subcommand to produce JWK_FILE material.
func Generate(kid string) (private, public jose.JSONWebKey, err error) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return jose.JSONWebKey{}, jose.JSONWebKey{}, fmt.Errorf("generating RSA key: %w", err)
	}

	private = jose.JSONWebKey{
		Key:       rsaKey,
		KeyID:     kid,
		Use:       "sig",
		Algorithm: "RS256",
	}
	public = jose.JSONWebKey{
		Key:       &rsaKey.PublicKey,
		KeyID:     kid,
		Use:       "sig",
		Algorithm: "RS256",
	}

	return private, public, nil
}
