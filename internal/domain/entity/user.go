// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Authentication provider tags. A user authenticates either with a locally
// stored password hash ("local") or through an external OAuth provider.
const (
	ProviderLocal     = "local"
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

// User is the core identity entity. A single record represents one account
// regardless of how it authenticates: password accounts carry a bcrypt hash,
// OAuth accounts carry a provider tag plus the provider-scoped subject id.
type User struct {
	ID              int64     // Numeric identifier; the sole authorization context on API calls.
	FullName        string    // Display name.
	Email           string    // Lowercased login identifier, unique across all providers.
	PasswordHash    string    // bcrypt hash; empty for OAuth-only accounts.
	Provider        string    // "local" or an external provider name such as "google".
	ProviderID      string    // Subject id assigned by the external provider; empty for local accounts.
	AvatarURL       string    // Optional profile image URL.
	Bio             string    // Optional short biography.
	PreferredEmail  string    // Optional alternate contact email shown on the profile.
	IsEmailVerified bool      // True when the most recent authentication came from an OAuth provider.
	CreatedAt       time.Time // Timestamp of account creation.
	UpdatedAt       time.Time // Timestamp of the last modification or login.
}

// HasPassword reports whether this account can complete a password login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// NormalizeEmail lowercases and trims an email so lookups and uniqueness
// checks are case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
