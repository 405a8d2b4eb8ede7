// Package auth mints the short-lived signed tokens that authenticate
// every Euskalmet API request.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "euskalmet-hassio"
	Audience = "met01.apikey"
	Version  = "1.0.0"
)

// ErrInvalidKey means the configured private key cannot be parsed or
// cannot sign. This is a reconfiguration problem, never retried.
var ErrInvalidKey = errors.New("auth: invalid private key")

// Credential is the immutable identity material for one configuration.
type Credential struct {
	PrivateKey  *rsa.PrivateKey
	Fingerprint string
}

// NewCredential parses PEM-encoded RSA key material.
func NewCredential(privateKeyPEM []byte, fingerprint string) (Credential, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return Credential{PrivateKey: key, Fingerprint: fingerprint}, nil
}

// Issue mints a fresh RS256 token valid for the given window. Tokens are
// never cached; each outgoing request gets its own.
func Issue(cred Credential, validity time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"aud":     Audience,
		"iss":     Issuer,
		"version": Version,
		"iat":     now.Unix(),
		"exp":     now.Add(validity).Unix(),
		"loginId": cred.Fingerprint,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(cred.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return signed, nil
}
