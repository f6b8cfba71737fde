package http

import (
	"context"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFrom returns the caller attached by AuthnMiddleware.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(domain.Identity)
	return id, ok && id.UserID != ""
}
