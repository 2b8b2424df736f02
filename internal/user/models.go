package user

import (
	"errors"
	"time"

	"github.com/lhcpl/passdesk/internal/credential"
)

// User is a registered account together with the access-grant document
// snapshotted for it at creation time. The password is stored and served in
// the clear: this app distributes shared mailbox credentials and the mobile
// client displays them, so the account password follows the same handling.
type User struct {
	ID                 string                 `json:"id"`
	FullName           string                 `json:"fullName"`
	Email              string                 `json:"email"`
	Password           string                 `json:"password"`
	Role               string                 `json:"role"` // always "user"; the admin is config, not a record
	IsActive           bool                   `json:"isActive"`
	OrganizationAccess credential.AccessGrant `json:"organizationAccess"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// CreateInput holds the fields required to create a user. OrganizationAccess
// is the already-materialized grant document.
type CreateInput struct {
	FullName           string                 `json:"fullName"`
	Email              string                 `json:"email"`
	Password           string                 `json:"password"`
	OrganizationAccess credential.AccessGrant `json:"organizationAccess"`
}

// ErrEmailExists indicates a user with the same email already exists. It is
// also how a duplicate-email creation race surfaces: the unique index on
// email rejects the second insert.
var ErrEmailExists = errors.New("user already exists")
