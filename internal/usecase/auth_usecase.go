// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"blogapp/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a password account.
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput defines the data required for a password login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthLoginInput carries an identity assertion already extracted from an
// external provider by the client-side OAuth flow.
type OAuthLoginInput struct {
	Provider   string `json:"provider" validate:"required,max=50"`
	ProviderID string `json:"providerId" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=200"`
	FullName   string `json:"fullName" validate:"required,max=100"`
	AvatarURL  string `json:"avatarUrl" validate:"omitempty,url"`
}

// UpdateProfileInput is a partial update; nil fields leave the stored value
// untouched.
type UpdateProfileInput struct {
	FullName       *string `json:"fullName" validate:"omitempty,max=100"`
	Bio            *string `json:"bio"`
	PreferredEmail *string `json:"preferredEmail" validate:"omitempty,email"`
	AvatarURL      *string `json:"avatarUrl" validate:"omitempty,url"`
}

// --- Output DTOs ---

// UserProfile is the outward projection of a user; it never exposes the
// password hash or provider subject id.
type UserProfile struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	AvatarURL       string    `json:"avatarUrl,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	PreferredEmail  string    `json:"preferredEmail,omitempty"`
	Provider        string    `json:"provider"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AuthOutput returns the issued credentials after any successful
// authentication intent.
type AuthOutput struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *UserProfile `json:"user"`
}

// NewUserProfile maps a user entity to its outward projection.
func NewUserProfile(user *entity.User) *UserProfile {
	return &UserProfile{
		ID:              user.ID,
		FullName:        user.FullName,
		Email:           user.Email,
		AvatarURL:       user.AvatarURL,
		Bio:             user.Bio,
		PreferredEmail:  user.PreferredEmail,
		Provider:        user.Provider,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
	}
}

// AuthUsecase resolves authentication intents into a canonical identity and
// issues credentials for it. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	OAuthLogin(ctx context.Context, input *OAuthLoginInput) (*AuthOutput, error)
	GetProfile(ctx context.Context, userID int64) (*UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, input *UpdateProfileInput) (*UserProfile, error)
}
