package service

import (
	"github.com/golang-jwt/jwt/v5"

	"blogapp/internal/domain/entity"
)

// AccessClaims defines the verifiable claims carried by an access token.
type AccessClaims struct {
	UserID   int64  `json:"-"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating credentials.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueAccessToken creates a signed, time-boxed access token whose claims
	// identify the given user.
	IssueAccessToken(user *entity.User) (string, error)

	// IssueRefreshToken creates an opaque random credential. It is returned
	// alongside the access token but is neither stored nor redeemable here.
	IssueRefreshToken() (string, error)

	// ValidateAccessToken verifies signature, expiry, issuer and audience,
	// and returns the embedded claims.
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
}
