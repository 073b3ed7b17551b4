// Package httpapi is the HTTP boundary over the auth core: it decodes
// requests, invokes use cases and maps error kinds to status codes.
package httpapi

import (
	"net/http"
	"time"

	"gatehouse.dev/internal/auth"
	"gatehouse.dev/internal/obs"
)

const maxBodyBytes = 1 << 20

// Options configures boundary behavior.
type Options struct {
	Version    string
	Production bool
	CORSOrigin string
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	store      auth.Store
	version    string
	production bool
	corsOrigin string
	cookieTTL  time.Duration
}

// New wires the route table.
func New(svc *auth.Service, store auth.Store, opts Options) *API {
	a := &API{
		mux:        http.NewServeMux(),
		auth:       svc,
		store:      store,
		version:    opts.Version,
		production: opts.Production,
		corsOrigin: opts.CORSOrigin,
		cookieTTL:  svc.TokenTTL(),
	}

	a.mux.HandleFunc("/api/auth/register", a.handleRegister)
	a.mux.HandleFunc("/api/auth/login", a.handleLogin)
	a.mux.Handle("/api/auth/me", a.withAuth(http.HandlerFunc(a.handleMe)))
	a.mux.HandleFunc("/api/auth/logout", a.handleLogout)

	a.mux.Handle("/api/users", a.withAuth(a.requireRoles(http.HandlerFunc(a.handleListUsers), "ADMIN")))
	a.mux.Handle("/api/users/profile", a.withAuth(http.HandlerFunc(a.handleProfile)))
	a.mux.Handle("/api/users/moderator-only", a.withAuth(a.requireRoles(http.HandlerFunc(a.handleModeratorArea), "MODERATOR", "ADMIN")))

	a.mux.HandleFunc("/api/health", a.handleHealth)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", a.handleNotFound)

	return a
}

// Handler returns the server handler with the full middleware chain applied.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, maxBodyBytes)
	h = a.cors(h)
	h = SecurityHeaders(h)
	h = Logging(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
