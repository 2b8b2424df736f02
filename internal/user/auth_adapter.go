package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/lhcpl/passdesk/internal/auth"
)

// AuthAdapter adapts user.Store to the auth.UserLookup interface.
type AuthAdapter struct {
	store *Store
}

// NewAuthAdapter creates a new AuthAdapter wrapping the given user store.
func NewAuthAdapter(store *Store) *AuthAdapter {
	return &AuthAdapter{store: store}
}

// GetByEmail looks up a user by email and converts it to an auth.Account.
// A missing row becomes auth.ErrAccountNotFound; any other store error
// passes through so the gate can report it as a failure, not a rejection.
func (a *AuthAdapter) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	u, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	return &auth.Account{
		ID:       u.ID,
		Email:    u.Email,
		Password: u.Password,
		Role:     u.Role,
		Active:   u.IsActive,
	}, nil
}
