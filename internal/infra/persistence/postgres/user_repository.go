package postgres

import (
	"context"

	"blogapp/internal/domain/entity"
	domainerrors "blogapp/internal/domain/errors"
	"blogapp/internal/domain/repository"
	"blogapp/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their numeric id.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their normalized email. The email
// column carries the normalized form, so an exact match suffices.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByProvider retrieves the user linked to an external provider identity.
func (repo *userRepository) FindByProvider(ctx context.Context, provider, providerID string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by provider identity")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity. Uniqueness of email and of the
// (provider, provider_id) pair is enforced by the database indexes; racing
// inserts surface as repository.ErrDuplicateUser.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the storage.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	providerID := ""
	if data.ProviderID != nil {
		providerID = *data.ProviderID
	}

	return &entity.User{
		ID:              data.ID,
		FullName:        data.FullName,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Provider:        data.Provider,
		ProviderID:      providerID,
		AvatarURL:       data.AvatarURL,
		Bio:             data.Bio,
		PreferredEmail:  data.PreferredEmail,
		IsEmailVerified: data.IsEmailVerified,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
// An empty ProviderID persists as NULL so local accounts never collide on
// the composite provider index.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	var providerID *string
	if data.ProviderID != "" {
		providerID = &data.ProviderID
	}

	return &model.UserModel{
		ID:              data.ID,
		FullName:        data.FullName,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Provider:        data.Provider,
		ProviderID:      providerID,
		AvatarURL:       data.AvatarURL,
		Bio:             data.Bio,
		PreferredEmail:  data.PreferredEmail,
		IsEmailVerified: data.IsEmailVerified,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
