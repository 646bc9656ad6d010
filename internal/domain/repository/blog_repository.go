package repository

import (
	"context"
	"errors"

	"blogapp/internal/domain/entity"
)

// Domain-specific errors for content persistence.
var (
	// ErrBlogNotFound is returned when a blog post is not found.
	ErrBlogNotFound = errors.New("blog not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
)

// BlogFilter narrows a blog listing query. Zero values mean "no filter".
type BlogFilter struct {
	Category      string // Exact category match.
	Search        string // Case-insensitive substring over title, content and tags.
	PublishedOnly bool   // Restrict to published posts.
	AuthorID      int64  // Restrict to one author (includes drafts).
}

// BlogPage is one page of a blog listing together with the total match count.
type BlogPage struct {
	Blogs []*entity.Blog
	Total int64
}

// BlogStats carries the per-post aggregates the listing and detail responses
// need: like and comment counts plus whether the current viewer liked it.
type BlogStats struct {
	LikeCount    int64
	CommentCount int64
	Liked        bool
}

// BlogRepository defines the standard operations for blog post persistence.
type BlogRepository interface {
	// FindByID retrieves a single blog post by id.
	FindByID(ctx context.Context, id int64) (*entity.Blog, error)

	// List returns one page of posts matching the filter, newest first
	// (by publish time when PublishedOnly, otherwise by creation time).
	List(ctx context.Context, filter BlogFilter, page, pageSize int) (*BlogPage, error)

	// Create persists a new blog post and assigns its id.
	Create(ctx context.Context, blog *entity.Blog) error

	// Update modifies an existing blog post.
	Update(ctx context.Context, blog *entity.Blog) error

	// Delete removes a blog post together with its comments and likes.
	Delete(ctx context.Context, id int64) error

	// IncrementViewCount bumps the view counter without rewriting the row.
	IncrementViewCount(ctx context.Context, id int64) error

	// Stats returns like/comment aggregates for a set of posts. viewerID of
	// zero means an anonymous viewer (Liked is always false).
	Stats(ctx context.Context, blogIDs []int64, viewerID int64) (map[int64]BlogStats, error)

	// Categories lists the distinct categories across published posts.
	Categories(ctx context.Context) ([]string, error)
}

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	// FindByID retrieves a single comment by id.
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)

	// ListByBlog returns all comments on a post, oldest first.
	ListByBlog(ctx context.Context, blogID int64) ([]*entity.Comment, error)

	// Create persists a new comment and assigns its id.
	Create(ctx context.Context, comment *entity.Comment) error

	// Delete removes a comment.
	Delete(ctx context.Context, id int64) error
}

// LikeRepository defines the operations backing the like toggle.
type LikeRepository interface {
	// Find returns the like a user placed on a post, or nil when absent.
	Find(ctx context.Context, blogID, userID int64) (*entity.BlogLike, error)

	// Create persists a new like.
	Create(ctx context.Context, like *entity.BlogLike) error

	// Delete removes a like.
	Delete(ctx context.Context, id int64) error
}
