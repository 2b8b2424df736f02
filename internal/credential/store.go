package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides database operations for organization credentials.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const credentialColumns = `id, organization, type, email, password, created_at, updated_at`

func scanCredential(row pgx.Row) (*Credential, error) {
	var c Credential
	err := row.Scan(
		&c.ID,
		&c.Organization,
		&c.Type,
		&c.Email,
		&c.Password,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByKey retrieves the credential for the given (organization, type) key.
// Returns ErrNotFound when no record exists.
func (s *Store) GetByKey(ctx context.Context, key Key) (*Credential, error) {
	c, err := scanCredential(s.pool.QueryRow(ctx,
		`SELECT `+credentialColumns+`
		 FROM credentials WHERE organization = $1 AND type = $2`,
		string(key.Organization), key.Type,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting credential by key: %w", err)
	}
	return c, nil
}

// List returns all stored credentials ordered by organization and type.
func (s *Store) List(ctx context.Context) ([]*Credential, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+credentialColumns+`
		 FROM credentials ORDER BY organization, type`)
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	defer rows.Close()

	var creds []*Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning credential row: %w", err)
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

// Create inserts a new credential record. Used by seeding; admin edits go
// through Update.
func (s *Store) Create(ctx context.Context, in UpdateInput) (*Credential, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := scanCredential(s.pool.QueryRow(ctx,
		`INSERT INTO credentials (id, organization, type, email, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+credentialColumns,
		uuid.NewString(), in.Organization, in.Type, in.Email, in.Password,
	))
	if err != nil {
		return nil, fmt.Errorf("creating credential: %w", err)
	}
	return c, nil
}

// Update overwrites the email and password of an existing credential.
// Returns ErrNotFound when no record exists for the (organization, type)
// key. Last write wins; there is no version check.
func (s *Store) Update(ctx context.Context, in UpdateInput) (*Credential, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := scanCredential(s.pool.QueryRow(ctx,
		`UPDATE credentials SET email = $1, password = $2, updated_at = now()
		 WHERE organization = $3 AND type = $4
		 RETURNING `+credentialColumns,
		in.Email, in.Password, in.Organization, in.Type,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating credential: %w", err)
	}
	return c, nil
}
