package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/lhcpl/passdesk/internal/auth"
	"github.com/lhcpl/passdesk/internal/metrics"
)

// authHandler groups the user-facing authentication handlers.
type authHandler struct {
	users   UserDirectory
	auth    *auth.Service
	metrics *metrics.Metrics
}

func newAuthHandler(users UserDirectory, authSvc *auth.Service, m *metrics.Metrics) *authHandler {
	return &authHandler{users: users, auth: authSvc, metrics: m}
}

// Login handles POST /auth/login. The client tries /admin/login first and
// falls through here on failure; that ordering lives in the client, not this
// handler.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	token, err := h.auth.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.IncAuthFailure("user")
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		slog.Error("authenticating user", "error", err, "email", req.Email)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.metrics.IncAuthSuccess("user")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me handles GET /auth/me. The lookup key comes from the token's user id
// claim, never from client input, so a user can only ever fetch their own
// record. Admin tokens carry no user id and get a 404 here.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || claims.UserID == "" {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	u, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, u)
}
