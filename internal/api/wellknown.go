package api

import "net/http"

// wellKnownManifest is the static JSON manifest for /.well-known/passdesk.json.
const wellKnownManifest = `{
  "name": "Passdesk",
  "description": "Credential distribution API for organization mailboxes and hosting",
  "version": "0.1.0",
  "auth": {
    "type": "bearer",
    "header": "Authorization"
  },
  "endpoints": {
    "admin_login": "/admin/login",
    "users": "/admin/users",
    "organization_credentials": "/admin/organization-credentials",
    "login": "/auth/login",
    "me": "/auth/me"
  },
  "health": "/health"
}`

// WellKnownHandler returns the static passdesk well-known manifest.
func WellKnownHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(wellKnownManifest))
}
