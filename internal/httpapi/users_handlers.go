package httpapi

import (
	"net/http"

	"gatehouse.dev/internal/auth"
)

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
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

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	users, err := a.auth.ListUsers(r.Context())
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]any{"users": users})
}

func (a *API) handleModeratorArea(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	payload, _ := auth.PayloadFromContext(r.Context())
	writeSuccess(w, http.StatusOK, "This is a moderator/admin only route", map[string]any{
		"userId": payload.UserID,
		"email":  payload.Email,
		"roles":  payload.Roles,
	})
}
