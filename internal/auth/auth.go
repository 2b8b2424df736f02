// Package auth implements the authentication gate: static admin credentials,
// directory-backed user login, and signed bearer tokens carrying role claims.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Role values carried in token claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ErrInvalidCredentials is the uniform rejection for every authentication
// failure: unknown email, wrong password, inactive account, wrong admin
// pair. Callers map it to a generic 401 with no finer distinction.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountNotFound reports that no directory account exists for the email.
// Lookups return it so the gate can tell a missing account from a store
// failure; only the former collapses into ErrInvalidCredentials.
var ErrAccountNotFound = errors.New("account not found")

// Account is the directory view the gate authenticates against.
type Account struct {
	ID       string
	Email    string
	Password string
	Role     string
	Active   bool
}

// UserLookup resolves directory accounts by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// Service authenticates admins against the configured static pair and users
// against the directory, and issues bearer tokens for both.
type Service struct {
	adminEmail    string
	adminPassword string
	users         UserLookup
	tokens        *TokenSigner
}

// NewService creates an authentication service. The admin pair comes from
// configuration; it is not a directory record.
func NewService(adminEmail, adminPassword string, users UserLookup, tokens *TokenSigner) *Service {
	return &Service{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		users:         users,
		tokens:        tokens,
	}
}

// AuthenticateAdmin compares the submitted pair byte-for-byte against the
// configured admin credentials and issues an admin token on match. Password
// hashing is deliberately absent across this service; see the data-handling
// note on user.User.
func (s *Service) AuthenticateAdmin(email, password string) (string, error) {
	if email != s.adminEmail || password != s.adminPassword {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Sign(Claims{Role: RoleAdmin})
}

// AuthenticateUser looks up the account by email, rejects absent or inactive
// accounts, compares the password byte-for-byte, and issues a token carrying
// the user's id and role. A lookup failure that is not ErrAccountNotFound is
// a store error and comes back wrapped, not as a credential rejection.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (string, error) {
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up account: %w", err)
	}
	if !account.Active {
		return "", ErrInvalidCredentials
	}
	if password != account.Password {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Sign(Claims{Role: account.Role, UserID: account.ID})
}

// Verify validates a bearer token and returns its claims.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// TokenTTL returns the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokens.ttl
}
