package httpapi

import (
	"errors"
	"net/http"

	"gatehouse.dev/internal/audit"
	"gatehouse.dev/internal/auth"
	"gatehouse.dev/internal/obs"
)

const tokenCookieName = "token"

type registerRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Name      string   `json:"name,omitempty"`
	RoleNames []string `json:"roleNames,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionData struct {
	User  auth.UserView `json:"user"`
	Token string        `json:"token"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := a.auth.Register(r.Context(), auth.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		RoleNames: req.RoleNames,
	})
	if err != nil {
		a.writeAuthError(w, err)
		return
	}

	obs.RecordRegistration()
	_ = audit.LogEvent(r.Context(), "auth.user.registered", map[string]any{
		"user_id": session.User.ID,
		"email":   session.User.Email,
		"roles":   session.User.Roles,
	})

	a.setTokenCookie(w, session.Token)
	writeSuccess(w, http.StatusCreated, "User registered successfully", sessionData{
		User:  session.User,
		Token: session.Token,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			obs.RecordLogin("denied")
		}
		a.writeAuthError(w, err)
		return
	}

	obs.RecordLogin("ok")
	_ = audit.LogEvent(r.Context(), "auth.user.login", map[string]any{
		"user_id": session.User.ID,
		"email":   session.User.Email,
	})

	a.setTokenCookie(w, session.Token)
	writeSuccess(w, http.StatusOK, "Login successful", sessionData{
		User:  session.User,
		Token: session.Token,
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	payload, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := a.auth.CurrentUser(r.Context(), payload.UserID)
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"user": user})
}

// Logout is purely a client-side token discard: the cookie is cleared and no
// server state changes. Stateless tokens stay valid until expiry.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.user.logout", nil)
	a.clearTokenCookie(w)
	writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

func (a *API) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.production,
		SameSite: http.SameSiteStrictMode,
	})
}

func (a *API) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.production,
		SameSite: http.SameSiteStrictMode,
	})
}
