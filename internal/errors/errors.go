package errors

import "errors"

// Key material errors.
var (
	ErrKeyParse  = errors.New("invalid JWK document")
	ErrKeyNotRSA = errors.New("JWK does not hold an RSA private key")
)

// Configuration errors.
var (
	ErrMissingConfig = errors.New("missing required configuration")
)
