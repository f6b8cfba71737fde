package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// IdentityResolver turns a bearer token into the caller it names.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}

// AuthnMiddleware requires a valid session token, from the Authorization
// header or the session cookie, and attaches the resolved identity to the
// request context. Every token failure produces the same 401.
func AuthnMiddleware(resolver IdentityResolver, cookieName string, m *metrics.Metrics) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := httpx.TokenFromRequest(r, cookieName)
			if !ok {
				m.AuthnFailure("missing_token")
				writeUnauthorized(w)
				return
			}

			id, err := resolver.Resolve(ctx, raw)
			if err != nil {
				reason := authnFailureReason(err)
				m.AuthnFailure(reason)

				if errors.Is(err, service.ErrStoreUnavailable) {
					log.Error("identity lookup failed", slog.Any("error", err))
					httpx.WriteMessage(w, http.StatusInternalServerError, "internal server error")
					return
				}
				log.Info("token rejected",
					slog.String("reason", reason),
					slog.String("token_fp", cryptox.FingerprintToken(raw)),
				)
				writeUnauthorized(w)
				return
			}

			ctx = slogx.With(ctx, "user_id", id.UserID)
			ctx = WithIdentity(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authnFailureReason(err error) string {
	for _, sentinel := range []error{
		service.ErrExpiredToken,
		service.ErrBadSignature,
		service.ErrMalformedToken,
		service.ErrUnknownSubject,
		service.ErrStoreUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "unknown"
}

// RFC 6750 error response for bearer auth. The description is fixed so the
// response never says which check failed.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized")
}
