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

// blogRepository implements the repository.BlogRepository interface using GORM.
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository is the constructor for blogRepository.
func NewBlogRepository(db *gorm.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

// FindByID retrieves a single blog post by id.
func (repo *blogRepository) FindByID(ctx context.Context, id int64) (*entity.Blog, error) {
	var blogM model.BlogModel
	if err := repo.db.WithContext(ctx).First(&blogM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogNotFound
		}

		return nil, errors.Wrap(err, "failed to find blog by id")
	}

	return toBlogDomain(&blogM), nil
}

// List returns one page of posts matching the filter, newest first. Published
// listings order by publish time; author listings (which include drafts)
// order by creation time.
func (repo *blogRepository) List(ctx context.Context, filter repository.BlogFilter, page, pageSize int) (*repository.BlogPage, error) {
	query := repo.db.WithContext(ctx).Model(&model.BlogModel{})

	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.AuthorID != 0 {
		query = query.Where("user_id = ?", filter.AuthorID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ? OR tags ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count blogs")
	}

	order := "created_at DESC"
	if filter.PublishedOnly {
		order = "published_at DESC"
	}

	var blogMs []*model.BlogModel
	err := query.Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&blogMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs")
	}

	blogs := make([]*entity.Blog, 0, len(blogMs))
	for _, blogM := range blogMs {
		blogs = append(blogs, toBlogDomain(blogM))
	}

	return &repository.BlogPage{Blogs: blogs, Total: total}, nil
}

// Create persists a new blog post and assigns its id.
func (repo *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)

	if err := repo.db.WithContext(ctx).Create(blogM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create blog")
	}

	blog.ID = blogM.ID
	blog.CreatedAt = blogM.CreatedAt
	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

// Update modifies an existing blog post.
func (repo *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)

	if err := repo.db.WithContext(ctx).Save(blogM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update blog")
	}

	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

// Delete removes a blog post together with its comments and likes. The
// dependent rows go first so the delete never trips the foreign keys.
func (repo *blogRepository) Delete(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete blog comments")
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogLikeModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete blog likes")
		}

		result := tx.Delete(&model.BlogModel{}, id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete blog")
		}
		if result.RowsAffected == 0 {
			return repository.ErrBlogNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return repository.ErrBlogNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete blog")
	}

	return nil
}

// IncrementViewCount bumps the view counter without rewriting the row, so
// concurrent reads never lose counts.
func (repo *blogRepository) IncrementViewCount(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).Model(&model.BlogModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to increment view count")
	}

	return nil
}

// Stats returns like/comment aggregates for a set of posts in three grouped
// queries, regardless of page size.
func (repo *blogRepository) Stats(ctx context.Context, blogIDs []int64, viewerID int64) (map[int64]repository.BlogStats, error) {
	stats := make(map[int64]repository.BlogStats, len(blogIDs))
	if len(blogIDs) == 0 {
		return stats, nil
	}

	type countRow struct {
		BlogID int64
		Count  int64
	}

	var likeRows []countRow
	err := repo.db.WithContext(ctx).Model(&model.BlogLikeModel{}).
		Select("blog_id, COUNT(*) AS count").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").
		Scan(&likeRows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count likes")
	}
	for _, row := range likeRows {
		entry := stats[row.BlogID]
		entry.LikeCount = row.Count
		stats[row.BlogID] = entry
	}

	var commentRows []countRow
	err = repo.db.WithContext(ctx).Model(&model.CommentModel{}).
		Select("blog_id, COUNT(*) AS count").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").
		Scan(&commentRows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count comments")
	}
	for _, row := range commentRows {
		entry := stats[row.BlogID]
		entry.CommentCount = row.Count
		stats[row.BlogID] = entry
	}

	if viewerID != 0 {
		var likedIDs []int64
		err = repo.db.WithContext(ctx).Model(&model.BlogLikeModel{}).
			Where("blog_id IN ? AND user_id = ?", blogIDs, viewerID).
			Pluck("blog_id", &likedIDs).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to load viewer likes")
		}
		for _, blogID := range likedIDs {
			entry := stats[blogID]
			entry.Liked = true
			stats[blogID] = entry
		}
	}

	return stats, nil
}

// Categories lists the distinct non-empty categories across published posts.
func (repo *blogRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := repo.db.WithContext(ctx).Model(&model.BlogModel{}).
		Where("is_published = ? AND category <> ''", true).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// toBlogDomain converts a GORM BlogModel to a domain Blog entity.
func toBlogDomain(data *model.BlogModel) *entity.Blog {
	if data == nil {
		return nil
	}

	return &entity.Blog{
		ID:              data.ID,
		Title:           data.Title,
		Content:         data.Content,
		Summary:         data.Summary,
		CoverImageURL:   data.CoverImageURL,
		Category:        data.Category,
		Tags:            data.Tags,
		IsPublished:     data.IsPublished,
		ViewCount:       data.ViewCount,
		ReadTimeMinutes: data.ReadTimeMinutes,
		UserID:          data.UserID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		PublishedAt:     data.PublishedAt,
	}
}

// fromBlogDomain converts a domain Blog entity to a GORM BlogModel.
func fromBlogDomain(data *entity.Blog) *model.BlogModel {
	if data == nil {
		return nil
	}

	return &model.BlogModel{
		ID:              data.ID,
		Title:           data.Title,
		Content:         data.Content,
		Summary:         data.Summary,
		CoverImageURL:   data.CoverImageURL,
		Category:        data.Category,
		Tags:            data.Tags,
		IsPublished:     data.IsPublished,
		ViewCount:       data.ViewCount,
		ReadTimeMinutes: data.ReadTimeMinutes,
		UserID:          data.UserID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		PublishedAt:     data.PublishedAt,
	}
}
