// Package auth provides the authentication primitives of the application:
// issuing and verifying HMAC-signed session tokens, and hashing and
// verifying passwords with bcrypt.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/primetrade/taskboard-api/internal/domain"
)

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT embedding the user's identity and
	// role. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken verifies the provided token string and extracts the
	// claims. Returns ErrExpiredToken, ErrInvalidSignature, or
	// ErrMalformedToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified claim set of a session token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid"`

	// Role is the user's authorization level at issuance time.
	Role domain.Role `json:"role"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
