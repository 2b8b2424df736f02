package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "passdesk"

// ErrInvalidToken indicates the token failed verification: absent,
// malformed, expired, or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by passdesk bearer tokens. Admin tokens
// carry only the role; user tokens also carry the account id.
type Claims struct {
	Role   string `json:"role"`
	UserID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// TokenSigner signs and verifies HS256 bearer tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenSigner creates a signer with the given secret and token lifetime.
func NewTokenSigner(secret []byte, ttl time.Duration) *TokenSigner {
	return &TokenSigner{secret: secret, ttl: ttl}
}

// Sign issues a token for the given claims with the configured expiry.
func (ts *TokenSigner) Sign(claims Claims) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// Verify checks the token signature, method, issuer, and expiry and returns
// the claims. Any failure is reported as ErrInvalidToken.
func (ts *TokenSigner) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != issuer || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
