package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lhcpl/passdesk/internal/credential"
)

// Store provides database operations for user accounts.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new user store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, full_name, email, password, role, is_active, organization_access, created_at, updated_at`

// scanUser scans a user row, handling the JSONB organization_access column.
func scanUser(scan func(dest ...any) error) (*User, error) {
	u := &User{}
	var grantJSON []byte
	err := scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.Role, &u.IsActive, &grantJSON, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(grantJSON) > 0 {
		if err := json.Unmarshal(grantJSON, &u.OrganizationAccess); err != nil {
			return nil, fmt.Errorf("unmarshaling organization access: %w", err)
		}
	}
	if u.OrganizationAccess == nil {
		u.OrganizationAccess = credential.AccessGrant{}
	}
	return u, nil
}

// Create inserts a new user with role "user" and is_active true. Returns
// ErrEmailExists when the email is already taken, including when a
// concurrent creation wins the race on the unique index.
func (s *Store) Create(ctx context.Context, in CreateInput) (*User, error) {
	grantJSON, err := json.Marshal(in.OrganizationAccess.Normalize())
	if err != nil {
		return nil, fmt.Errorf("marshaling organization access: %w", err)
	}

	u, err := scanUser(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`INSERT INTO users (id, full_name, email, password, role, is_active, organization_access)
			 VALUES ($1, $2, $3, $4, 'user', TRUE, $5)
			 RETURNING `+userColumns,
			uuid.NewString(), in.FullName, in.Email, in.Password, grantJSON,
		).Scan(dest...)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetByID retrieves a user by primary key.
func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
		).Scan(dest...)
	})
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email address.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
		).Scan(dest...)
	})
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// List returns all accounts with role "user", newest first. The admin
// identity never appears here; it has no record.
func (s *Store) List(ctx context.Context) ([]*User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'user' ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete removes a user by id. Deleting a nonexistent id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
