package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// RequireRole lets the request through only when the caller's role is in
// allowed. It never verifies tokens itself; without an identity from
// AuthnMiddleware the request is refused.
func RequireRole(allowed domain.RoleSet, m *metrics.Metrics) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				m.AuthzDenial(domain.RoleNone.String())
				slogx.FromContext(r.Context()).Warn("role gate reached without identity")
				httpx.WriteMessage(w, http.StatusForbidden, "forbidden")
				return
			}

			if !allowed.Allows(id.Role) {
				m.AuthzDenial(id.Role.String())
				slogx.FromContext(r.Context()).Info("request denied by role",
					slog.String("role", id.Role.String()),
				)
				httpx.WriteMessage(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
