package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// CreateBlogInput defines the data required to create a post.
type CreateBlogInput struct {
	Title         string `json:"title" validate:"required,max=300"`
	Content       string `json:"content" validate:"required"`
	Summary       string `json:"summary" validate:"omitempty,max=500"`
	CoverImageURL string `json:"coverImageUrl" validate:"omitempty,url"`
	Category      string `json:"category" validate:"omitempty,max=100"`
	Tags          string `json:"tags"`
	IsPublished   bool   `json:"isPublished"`
}

// UpdateBlogInput is a partial update; nil fields leave the stored value
// untouched.
type UpdateBlogInput struct {
	Title         *string `json:"title" validate:"omitempty,max=300"`
	Content       *string `json:"content"`
	Summary       *string `json:"summary" validate:"omitempty,max=500"`
	CoverImageURL *string `json:"coverImageUrl" validate:"omitempty,url"`
	Category      *string `json:"category" validate:"omitempty,max=100"`
	Tags          *string `json:"tags"`
	IsPublished   *bool   `json:"isPublished"`
}

// ListBlogsInput narrows and pages the public blog listing.
type ListBlogsInput struct {
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Category string `query:"category"`
	Search   string `query:"search"`
}

// CreateCommentInput defines the data required to add a comment.
type CreateCommentInput struct {
	Content string `json:"content" validate:"required"`
}

// --- Output DTOs ---

// Author is the display projection of a post or comment author.
type Author struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// BlogOutput is the outward projection of a post including viewer-dependent
// aggregates.
type BlogOutput struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	Summary         string     `json:"summary,omitempty"`
	CoverImageURL   string     `json:"coverImageUrl,omitempty"`
	Category        string     `json:"category,omitempty"`
	Tags            string     `json:"tags,omitempty"`
	IsPublished     bool       `json:"isPublished"`
	ViewCount       int        `json:"viewCount"`
	ReadTimeMinutes int        `json:"readTimeMinutes"`
	LikeCount       int64      `json:"likeCount"`
	CommentCount    int64      `json:"commentCount"`
	IsLiked         bool       `json:"isLikedByCurrentUser"`
	CreatedAt       time.Time  `json:"createdAt"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	Author          *Author    `json:"author"`
}

// BlogListOutput is one page of posts plus paging metadata.
type BlogListOutput struct {
	Items      []*BlogOutput `json:"items"`
	TotalCount int64         `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// CommentOutput is the outward projection of a comment.
type CommentOutput struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Author   `json:"author"`
}

// BlogUsecase covers the content side of the platform: post CRUD with
// pagination and search, the like toggle, and comments. Callers pass the
// resolved numeric user id explicitly; a viewerID of zero means anonymous.
type BlogUsecase interface {
	ListBlogs(ctx context.Context, input *ListBlogsInput, viewerID int64) (*BlogListOutput, error)
	GetBlog(ctx context.Context, id int64, viewerID int64) (*BlogOutput, error)
	CreateBlog(ctx context.Context, userID int64, input *CreateBlogInput) (*BlogOutput, error)
	UpdateBlog(ctx context.Context, blogID, userID int64, input *UpdateBlogInput) (*BlogOutput, error)
	DeleteBlog(ctx context.Context, blogID, userID int64) error
	ListUserBlogs(ctx context.Context, userID int64, page, pageSize int) (*BlogListOutput, error)
	ToggleLike(ctx context.Context, blogID, userID int64) (bool, error)
	AddComment(ctx context.Context, blogID, userID int64, input *CreateCommentInput) (*CommentOutput, error)
	ListComments(ctx context.Context, blogID int64) ([]*CommentOutput, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
	ListCategories(ctx context.Context) ([]string, error)
}
