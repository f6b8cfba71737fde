package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

// CookieConfig controls the session cookie set on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionHandler serves the /api/sessions endpoints.
type SessionHandler struct {
	SessionService *service.SessionService
	UserService    *service.UserService
	Metrics        *metrics.Metrics
	Cookie         CookieConfig
}

// HandleLogin handles POST /api/sessions/login.
//
// Unknown email and wrong password produce the same 401 body. On success the
// token is returned in the body and set as an HTTP-only cookie.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storefrontsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.Metrics.LoginAttempt("bad_request")
		writeBadJSON(w)
		return
	}

	sess, err := h.SessionService.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingCredentials):
		h.Metrics.LoginAttempt("missing_credentials")
		httpx.WriteMessage(w, http.StatusBadRequest, "email and password are required")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		h.Metrics.LoginAttempt("invalid_credentials")
		httpx.WriteMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	default:
		h.Metrics.LoginAttempt("error")
		if ctx.Err() == nil {
			log.Error("login failed", slog.Any("error", err))
		}
		httpx.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.Metrics.LoginAttempt("success")
	http.SetCookie(w, h.sessionCookie(sess.Token))
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.LoginResponse{
		Message: "login successful",
		Token:   sess.Token,
	})
}

func (h *SessionHandler) sessionCookie(token string) *http.Cookie {
	ttl := h.SessionService.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// HandleCurrent handles GET /api/sessions/current. It sits behind
// AuthnMiddleware and echoes the resolved identity.
func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentityResponse(id))
}

// HandleRegister handles POST /api/sessions/register, the public sign-up.
// The role is always user whatever the body says.
func (h *SessionHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	u, err := h.UserService.Register(r.Context(), service.NewUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// HandleLogout handles POST /api/sessions/logout. It only clears the cookie,
// the token itself stays valid until it expires.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteMessage(w, http.StatusOK, "logged out")
}
