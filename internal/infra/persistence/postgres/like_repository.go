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

// likeRepository implements the repository.LikeRepository interface using GORM.
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository is the constructor for likeRepository.
func NewLikeRepository(db *gorm.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

// Find returns the like a user placed on a post, or nil when absent. Absence
// is a normal outcome of the toggle, not an error.
func (repo *likeRepository) Find(ctx context.Context, blogID, userID int64) (*entity.BlogLike, error) {
	var likeM model.BlogLikeModel
	err := repo.db.WithContext(ctx).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		First(&likeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find like")
	}

	return toLikeDomain(&likeM), nil
}

// Create persists a new like. The composite unique index makes a racing
// double-like fail instead of double-counting; the caller treats that as the
// like already being present.
func (repo *likeRepository) Create(ctx context.Context, like *entity.BlogLike) error {
	likeM := fromLikeDomain(like)

	if err := repo.db.WithContext(ctx).Create(likeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create like")
	}

	like.ID = likeM.ID
	like.CreatedAt = likeM.CreatedAt

	return nil
}

// Delete removes a like.
func (repo *likeRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.WithContext(ctx).Delete(&model.BlogLikeModel{}, id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete like")
	}

	return nil
}

// toLikeDomain converts a GORM BlogLikeModel to a domain BlogLike entity.
func toLikeDomain(data *model.BlogLikeModel) *entity.BlogLike {
	if data == nil {
		return nil
	}

	return &entity.BlogLike{
		ID:        data.ID,
		UserID:    data.UserID,
		BlogID:    data.BlogID,
		CreatedAt: data.CreatedAt,
	}
}

// fromLikeDomain converts a domain BlogLike entity to a GORM BlogLikeModel.
func fromLikeDomain(data *entity.BlogLike) *model.BlogLikeModel {
	if data == nil {
		return nil
	}

	return &model.BlogLikeModel{
		ID:        data.ID,
		UserID:    data.UserID,
		BlogID:    data.BlogID,
		CreatedAt: data.CreatedAt,
	}
}
