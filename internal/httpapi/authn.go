package httpapi

import (
	"net/http"
	"strings"

	"gatehouse.dev/internal/auth"
	"gatehouse.dev/internal/obs"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// withAuth authenticates the request from the Authorization header or the
// token cookie and attaches the verified payload to the context.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := extractToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required. No token provided.")
			return
		}
		payload, err := a.auth.VerifyToken(token)
		if err != nil {
			obs.RecordTokenFailure(tokenFailureKind(err))
			a.writeAuthError(w, err)
			return
		}
		ctx := auth.ContextWithPayload(r.Context(), payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles gates a route on the role intersection check. Must wrap
// handlers already behind withAuth.
func (a *API) requireRoles(next http.Handler, roles ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := auth.PayloadFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !auth.Allow(payload, roles...) {
			writeError(w, http.StatusForbidden, "You do not have permission to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the token cookie.
func extractToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get(authHeader))
	if header != "" && strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(header[len(bearerPrefix):]); token != "" {
			return token, true
		}
	}
	cookie, err := r.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
