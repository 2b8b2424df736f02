package credential

import (
	"errors"
	"strings"
	"time"
)

// Organization names the entities whose shared mailboxes and hosting
// accounts are distributed through this service.
type Organization string

const (
	OrgAgoraFarming Organization = "AgoraFarming"
	OrgLHCPL        Organization = "LHCPL"
	OrgHostinger    Organization = "hostinger"
)

// Organizations lists every known organization.
var Organizations = []Organization{OrgAgoraFarming, OrgLHCPL, OrgHostinger}

// Key is the composite lookup key for a stored credential. At most one
// credential exists per key.
type Key struct {
	Organization Organization
	Type         string // "support", "info" or "global"
}

// Credential is an admin-managed (organization, type) -> (email, password)
// record. Passwords are distributed as-is; the product decision is that
// recipients need the literal mailbox password.
type Credential struct {
	ID           string       `json:"id"`
	Organization Organization `json:"organization"`
	Type         string       `json:"type"`
	Email        string       `json:"email"`
	Password     string       `json:"password"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Key returns the credential's composite lookup key.
func (c *Credential) Key() Key {
	return Key{Organization: c.Organization, Type: c.Type}
}

// UpdateInput holds the fields of a credential edit.
type UpdateInput struct {
	Organization string `json:"organization"`
	Type         string `json:"type"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

var (
	ErrOrganizationRequired = errors.New("organization is required")
	ErrOrganizationUnknown  = errors.New("unknown organization")
	ErrTypeRequired         = errors.New("type is required")
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordRequired     = errors.New("password is required")

	// ErrNotFound indicates no credential exists for the requested key.
	ErrNotFound = errors.New("credential not found")
)

// Validate checks an update input for required fields and a known
// organization.
func (in UpdateInput) Validate() error {
	if strings.TrimSpace(in.Organization) == "" {
		return ErrOrganizationRequired
	}
	if !knownOrganization(Organization(in.Organization)) {
		return ErrOrganizationUnknown
	}
	if strings.TrimSpace(in.Type) == "" {
		return ErrTypeRequired
	}
	if strings.TrimSpace(in.Email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(in.Password) == "" {
		return ErrPasswordRequired
	}
	return nil
}

func knownOrganization(org Organization) bool {
	for _, o := range Organizations {
		if o == org {
			return true
		}
	}
	return false
}
