package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"gatehouse.dev/internal/auth"
	"gatehouse.dev/internal/obs"
)

// writeAuthError maps the auth error taxonomy onto fixed statuses and
// messages. Unclassified errors surface as 500 with detail suppressed in
// production.
func (a *API) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, auth.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidRoles):
		writeError(w, http.StatusBadRequest, "Invalid roles specified")
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, auth.ErrTokenMalformed):
		writeError(w, http.StatusUnauthorized, "Malformed token")
	case errors.Is(err, auth.ErrTokenBadSignature):
		writeError(w, http.StatusUnauthorized, "Invalid token signature")
	case errors.Is(err, auth.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "Token expired")
	default:
		obs.Error("request failed", err, nil)
		if a.production {
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeErrorDetail(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// validationMessage surfaces the human-readable part of a wrapped
// validation error.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), auth.ErrValidation.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return "Invalid input"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// tokenFailureKind labels token verification failures for metrics.
func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
