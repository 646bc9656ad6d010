// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "blogapp/internal/delivery/context"
	"blogapp/internal/domain/entity"
	domainerrors "blogapp/internal/domain/errors"
	"blogapp/internal/domain/repository"
	"blogapp/internal/domain/service"
	"blogapp/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It resolves the three
// authentication intents (password registration, password login, OAuth
// assertion) into a canonical user and delegates credential issuance to the
// token service.
type authService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   service.TokenService
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new local-provider account. The email must be unused by
// any account regardless of provider.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "register")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	user := &entity.User{
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: hash,
		Provider:     entity.ProviderLocal,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		// A racing registration loses to the unique index, not to the
		// application-level check above.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "register")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", user.ID))

	return srv.issueCredentials(ctx, user)
}

// Login authenticates a local-provider account. Unknown email, an account
// without a password hash and a hash mismatch all produce the same outcome.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.Provider != entity.ProviderLocal || !user.HasPassword() {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login")
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to touch user during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Int64("userID", user.ID))

	return srv.issueCredentials(ctx, user)
}

// OAuthLogin resolves an external identity assertion. Resolution order is
// fixed: provider subject first, then email linkage, then account creation.
func (srv *authService) OAuthLogin(ctx context.Context, input *usecase.OAuthLoginInput) (*usecase.AuthOutput, error) {
	provider := strings.ToLower(input.Provider)
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Handling OAuth assertion", slog.String("provider", provider))

	user, err := srv.resolveOAuthUser(ctx, provider, email, input)
	if err != nil {
		srv.log(ctx).Warn("OAuth resolution failed", slog.String("provider", provider), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, "oauth login")
	}

	return srv.issueCredentials(ctx, user)
}

func (srv *authService) resolveOAuthUser(ctx context.Context, provider, email string, input *usecase.OAuthLoginInput) (*entity.User, error) {
	// 1. Known provider subject: same account, refresh the avatar.
	user, err := srv.userRepo.FindByProvider(ctx, provider, input.ProviderID)
	if err == nil {
		// An incoming avatar always wins on this branch; only an absent one
		// leaves the stored value in place.
		if input.AvatarURL != "" {
			user.AvatarURL = input.AvatarURL
		}
		if err := srv.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to update user on oauth login")
		}

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by provider")
	}

	// 2. Known email: link this provider onto the existing account. A user is
	// linked to at most one external provider, so any prior linkage is
	// overwritten. The avatar is backfilled only when none is set.
	user, err = srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		user.Provider = provider
		user.ProviderID = input.ProviderID
		user.IsEmailVerified = true
		if user.AvatarURL == "" {
			user.AvatarURL = input.AvatarURL
		}
		if err := srv.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to link provider to user")
		}
		srv.log(ctx).Info("Linked provider to existing account", slog.Int64("userID", user.ID), slog.String("provider", provider))

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// 3. First sight of this identity: create a verified, password-less account.
	user = &entity.User{
		FullName:        input.FullName,
		Email:           email,
		Provider:        provider,
		ProviderID:      input.ProviderID,
		AvatarURL:       input.AvatarURL,
		IsEmailVerified: true,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user on oauth login")
	}
	srv.log(ctx).Info("Created account from OAuth assertion", slog.Int64("userID", user.ID), slog.String("provider", provider))

	return user, nil
}

// GetProfile returns the outward projection of a stored account.
func (srv *authService) GetProfile(ctx context.Context, userID int64) (*usecase.UserProfile, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "get profile")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return usecase.NewUserProfile(user), nil
}

// UpdateProfile merges the non-nil fields of a partial update into the stored
// account.
func (srv *authService) UpdateProfile(ctx context.Context, userID int64, input *usecase.UpdateProfileInput) (*usecase.UserProfile, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "update profile")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.PreferredEmail != nil {
		user.PreferredEmail = *input.PreferredEmail
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Int64("userID", user.ID))

	return usecase.NewUserProfile(user), nil
}

// issueCredentials hands the resolved identity to the token issuer.
func (srv *authService) issueCredentials(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokens.IssueAccessToken(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokens.IssueRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	return &usecase.AuthOutput{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         usecase.NewUserProfile(user),
	}, nil
}
