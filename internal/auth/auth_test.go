package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// --- mock directory ---

type mockUserLookup struct {
	accounts map[string]*Account
}

func (m *mockUserLookup) GetByEmail(_ context.Context, email string) (*Account, error) {
	account, ok := m.accounts[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

type failingLookup struct {
	err error
}

func (f failingLookup) GetByEmail(_ context.Context, _ string) (*Account, error) {
	return nil, f.err
}

func newTestService() *Service {
	lookup := &mockUserLookup{accounts: map[string]*Account{
		"ravi@lhcpl.in": {
			ID:       "u-1",
			Email:    "ravi@lhcpl.in",
			Password: "userpass",
			Role:     RoleUser,
			Active:   true,
		},
		"gone@lhcpl.in": {
			ID:       "u-2",
			Email:    "gone@lhcpl.in",
			Password: "userpass",
			Role:     RoleUser,
			Active:   false,
		},
	}}
	signer := NewTokenSigner([]byte("test-secret"), 24*time.Hour)
	return NewService("admin@lhcpl.in", "adminpass", lookup, signer)
}

// --- admin path ---

func TestAuthenticateAdmin_Match(t *testing.T) {
	svc := newTestService()

	token, err := svc.AuthenticateAdmin("admin@lhcpl.in", "adminpass")
	if err != nil {
		t.Fatalf("AuthenticateAdmin() error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected role %q, got %q", RoleAdmin, claims.Role)
	}
	if claims.UserID != "" {
		t.Errorf("admin token should carry no user id, got %q", claims.UserID)
	}
}

func TestAuthenticateAdmin_Mismatch(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name            string
		email, password string
	}{
		{"wrong email", "other@lhcpl.in", "adminpass"},
		{"wrong password", "admin@lhcpl.in", "nope"},
		{"both wrong", "other@lhcpl.in", "nope"},
		{"empty pair", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AuthenticateAdmin(tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

// --- user path ---

func TestAuthenticateUser_Match(t *testing.T) {
	svc := newTestService()

	token, err := svc.AuthenticateUser(context.Background(), "ravi@lhcpl.in", "userpass")
	if err != nil {
		t.Fatalf("AuthenticateUser() error: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.Role != RoleUser {
		t.Errorf("expected role %q, got %q", RoleUser, claims.Role)
	}
	if claims.UserID != "u-1" {
		t.Errorf("expected user id u-1, got %q", claims.UserID)
	}
}

func TestAuthenticateUser_Rejections(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name            string
		email, password string
	}{
		{"unknown email", "missing@lhcpl.in", "userpass"},
		{"wrong password", "ravi@lhcpl.in", "nope"},
		{"inactive account with correct password", "gone@lhcpl.in", "userpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AuthenticateUser(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthenticateUser_LookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	signer := NewTokenSigner([]byte("test-secret"), time.Hour)
	svc := NewService("admin@lhcpl.in", "adminpass", failingLookup{err: boom}, signer)

	_, err := svc.AuthenticateUser(context.Background(), "ravi@lhcpl.in", "userpass")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("a store failure must not look like a credential rejection")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected the store error to come back wrapped, got %v", err)
	}
}

// --- token signer ---

func TestTokenSigner_RoundTrip(t *testing.T) {
	signer := NewTokenSigner([]byte("secret"), time.Hour)

	token, err := signer.Sign(Claims{Role: RoleUser, UserID: "u-9"})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if claims.Role != RoleUser || claims.UserID != "u-9" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id claim")
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("unexpected expiry, %v remaining", remaining)
	}
}

func TestTokenSigner_WrongSecret(t *testing.T) {
	signer := NewTokenSigner([]byte("secret"), time.Hour)
	other := NewTokenSigner([]byte("different"), time.Hour)

	token, err := signer.Sign(Claims{Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenSigner_Expired(t *testing.T) {
	signer := NewTokenSigner([]byte("secret"), -time.Minute)

	token, err := signer.Sign(Claims{Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenSigner_Garbage(t *testing.T) {
	signer := NewTokenSigner([]byte("secret"), time.Hour)

	for _, token := range []string{"", "   ", "not.a.jwt", strings.Repeat("x", 200)} {
		if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}
