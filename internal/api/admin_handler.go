package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/lhcpl/passdesk/internal/auth"
	"github.com/lhcpl/passdesk/internal/credential"
	"github.com/lhcpl/passdesk/internal/metrics"
	"github.com/lhcpl/passdesk/internal/user"
)

// UserDirectory is the user-store surface the handlers consume.
type UserDirectory interface {
	Create(ctx context.Context, in user.CreateInput) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, id string) error
}

// CredentialStore is the credential-store surface the handlers consume. It
// also serves as the credential.Lookup for grant materialization.
type CredentialStore interface {
	GetByKey(ctx context.Context, key credential.Key) (*credential.Credential, error)
	List(ctx context.Context) ([]*credential.Credential, error)
	Update(ctx context.Context, in credential.UpdateInput) (*credential.Credential, error)
}

// adminHandler groups the admin HTTP handlers.
type adminHandler struct {
	users       UserDirectory
	credentials CredentialStore
	auth        *auth.Service
	metrics     *metrics.Metrics
}

func newAdminHandler(users UserDirectory, credentials CredentialStore, authSvc *auth.Service, m *metrics.Metrics) *adminHandler {
	return &adminHandler{users: users, credentials: credentials, auth: authSvc, metrics: m}
}

// Login handles POST /admin/login.
func (h *adminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	token, err := h.auth.AuthenticateAdmin(req.Email, req.Password)
	if err != nil {
		h.metrics.IncAuthFailure("admin")
		writeMessage(w, http.StatusUnauthorized, "Invalid admin credentials")
		return
	}

	h.metrics.IncAuthSuccess("admin")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateUser handles POST /admin/create-user. The access grant is
// materialized here, once; credential edits after this point never reach the
// created record.
func (h *adminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateInput
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		slog.Error("checking for existing user", "error", err, "email", req.Email)
		writeMessage(w, http.StatusInternalServerError, "User creation failed")
		return
	}

	grant, err := credential.Materialize(r.Context(), req.OrganizationAccess, h.credentials)
	if err != nil {
		slog.Error("materializing access grant", "error", err, "email", req.Email)
		writeMessage(w, http.StatusInternalServerError, "User creation failed")
		return
	}
	req.OrganizationAccess = grant

	u, err := h.users.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			// Lost the race to a concurrent creation with the same email.
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		slog.Error("creating user", "error", err, "email", req.Email)
		writeMessage(w, http.StatusInternalServerError, "User creation failed")
		return
	}

	h.metrics.IncUserCreated()
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User created successfully",
		"userId":  u.ID,
	})
}

// ListUsers handles GET /admin/users.
func (h *adminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("listing users", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	if users == nil {
		users = []*user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /admin/users/{id}. Deleting an id that does not
// exist still reports success.
func (h *adminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "User id is required")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		slog.Error("deleting user", "error", err, "user_id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	h.metrics.IncUserDeleted()
	writeMessage(w, http.StatusOK, "User deleted successfully")
}

// GetOrganizationCredentials handles GET /admin/organization-credentials.
func (h *adminHandler) GetOrganizationCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.credentials.List(r.Context())
	if err != nil {
		slog.Error("listing credentials", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch credentials")
		return
	}

	writeJSON(w, http.StatusOK, credential.View(creds))
}

// UpdateOrganizationCredential handles PUT /admin/organization-credentials.
func (h *adminHandler) UpdateOrganizationCredential(w http.ResponseWriter, r *http.Request) {
	var req credential.UpdateInput
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if _, err := h.credentials.Update(r.Context(), req); err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Credential not found")
			return
		}
		slog.Error("updating credential", "error", err,
			"organization", req.Organization, "type", req.Type)
		writeMessage(w, http.StatusInternalServerError, "Update failed")
		return
	}

	h.metrics.IncCredentialUpdate()
	writeMessage(w, http.StatusOK, "Credential updated successfully")
}
