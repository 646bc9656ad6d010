package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "alice@example.com", NormalizeEmail("alice@example.com"))
}

func TestUser_HasPassword(t *testing.T) {
	assert.True(t, (&User{PasswordHash: "$2a$10$hash"}).HasPassword())
	assert.False(t, (&User{Provider: ProviderGoogle}).HasPassword())
}
