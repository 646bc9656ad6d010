package auth

import (
	"testing"

	"blogapp/config"
	"blogapp/internal/domain/entity"
	"blogapp/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func createTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		JWT: config.JWTConfig{
			Secret:   testSecret,
			Issuer:   "blogapp-test",
			Audience: "blogapp-clients",
		},
	})
	require.NoError(t, err)

	return svc
}

func testUser() *entity.User {
	return &entity.User{
		ID:       42,
		FullName: "Alice",
		Email:    "alice@example.com",
		Provider: entity.ProviderLocal,
	}
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{
		JWT: config.JWTConfig{Secret: "too-short"},
	})
	require.Error(t, err)
}

func TestJWTService_IssueAndValidate_RoundTrip(t *testing.T) {
	svc := createTestTokenService(t)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, entity.ProviderLocal, claims.Provider)
	assert.Equal(t, "blogapp-test", claims.Issuer)
}

func TestJWTService_ValidateAccessToken_RejectsTampered(t *testing.T) {
	svc := createTestTokenService(t)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token + "x")
	require.Error(t, err)
}

func TestJWTService_ValidateAccessToken_RejectsForeignIssuer(t *testing.T) {
	svc := createTestTokenService(t)

	other, err := NewJWTService(&config.Config{
		JWT: config.JWTConfig{
			Secret:   testSecret,
			Issuer:   "someone-else",
			Audience: "blogapp-clients",
		},
	})
	require.NoError(t, err)

	token, err := other.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateAccessToken_RejectsGarbage(t *testing.T) {
	svc := createTestTokenService(t)

	_, err := svc.ValidateAccessToken("not-a-token")
	require.Error(t, err)
}

func TestJWTService_IssueRefreshToken_Unique(t *testing.T) {
	svc := createTestTokenService(t)

	first, err := svc.IssueRefreshToken()
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
