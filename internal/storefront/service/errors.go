package service

import "errors"

// Session errors. Every token and subject failure ends up as the same 401 at
// the HTTP boundary, they stay distinct here for logs and metrics.
var (
	ErrMalformedToken     = errors.New("malformed_token")
	ErrBadSignature       = errors.New("bad_signature")
	ErrExpiredToken       = errors.New("expired_token")
	ErrUnknownSubject     = errors.New("unknown_subject")
	ErrMissingCredentials = errors.New("missing_credentials")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInsufficientRole   = errors.New("insufficient_role")
	ErrStoreUnavailable   = errors.New("store_unavailable")
)

// Resource errors.
var (
	ErrInvalidInput  = errors.New("invalid_input")
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyExists = errors.New("already_exists")
)
