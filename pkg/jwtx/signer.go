package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when a signer or verifier is built without a
// secret. The service refuses to start in that case.
var ErrMissingSecret = errors.New("jwtx: signing secret is empty")

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a single shared secret.
type HS256Signer struct {
	secret []byte
}

// NewHS256Signer copies secret so later mutation by the caller cannot change
// what tokens are signed with.
func NewHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return &HS256Signer{secret: append([]byte(nil), secret...)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a compact signed JWT. The MAC
// covers the header and every claim, expiry included.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", ErrInvalidClaim
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
