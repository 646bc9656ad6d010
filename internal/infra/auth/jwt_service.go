// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"blogapp/config"
	"blogapp/internal/domain/entity"
	"blogapp/internal/domain/service"
)

const (
	// minSecretLength guards against weak HMAC keys; startup fails below it.
	minSecretLength = 32

	// accessTokenTTL is the fixed validity window of issued access tokens.
	accessTokenTTL = 7 * 24 * time.Hour

	// refreshTokenBytes is the entropy of the opaque refresh credential.
	refreshTokenBytes = 64
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTService is the constructor for jwtService. A missing or short signing
// secret is a fatal configuration error: the constructor refuses to build a
// service that would sign with a weak key.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if len(cfg.JWT.Secret) < minSecretLength {
		return nil, errors.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}

	return &jwtService{
		secret:   []byte(cfg.JWT.Secret),
		issuer:   cfg.JWT.Issuer,
		audience: cfg.JWT.Audience,
	}, nil
}

// IssueAccessToken creates an HS256-signed token identifying the user.
func (s *jwtService) IssueAccessToken(user *entity.User) (string, error) {
	now := time.Now()
	provider := user.Provider
	if provider == "" {
		provider = entity.ProviderLocal
	}

	claims := &service.AccessClaims{
		Email:    user.Email,
		Name:     user.FullName,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// IssueRefreshToken returns base64-encoded cryptographically secure random
// data. It is generated and returned only; nothing stores or redeems it.
func (s *jwtService) IssueRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// ValidateAccessToken verifies all four of signature, expiry, issuer and
// audience before handing back the claims.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims := &service.AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subject claim")
	}
	claims.UserID = userID

	return claims, nil
}
