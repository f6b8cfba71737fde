package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Now overrides the clock, tests use it to walk across the expiry.
	Now func() time.Time
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier checks tokens produced by HS256Signer with the same secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewHS256Verifier creates a verifier for secret.
func NewHS256Verifier(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &HS256Verifier{
		secret: append([]byte(nil), secret...),
		issuer: opts.Issuer,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			// exp is checked below against our own clock
			jwt.WithoutClaimsValidation(),
			// reject non-canonical base64 so every byte of the token counts
			jwt.WithStrictDecoding(),
		),
	}, nil
}

// Verify runs the checks in a fixed order: structure, signature, expiry,
// issuer. The returned error wraps exactly one of ErrMalformed,
// ErrInvalidSig, ErrExpired or ErrIssuer.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	_, err := v.parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrMalformed)
	}
	if err := claims.ValidateExpiry(v.now()); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
