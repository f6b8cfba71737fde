package httpx

import (
	"net/http"
	"strings"
)

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively per RFC 6750.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// TokenFromRequest looks for a bearer header first and falls back to the
// named cookie. An Authorization header with some other scheme does not
// block the cookie.
func TokenFromRequest(r *http.Request, cookieName string) (string, bool) {
	if token, ok := BearerToken(r); ok {
		return token, true
	}
	if cookieName == "" {
		return "", false
	}
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
