package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	deliverycontext "blogapp/internal/delivery/context"
	"blogapp/internal/domain/entity"
	domainerrors "blogapp/internal/domain/errors"
	"blogapp/internal/domain/repository"
	"blogapp/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// blogService implements the BlogUsecase interface. Ownership checks compare
// the caller's resolved user id against the stored foreign key; author display
// data is joined in from the user repository by id.
type blogService struct {
	blogRepo    repository.BlogRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// BlogServiceParams holds dependencies for blogService, injected by Fx.
type BlogServiceParams struct {
	fx.In

	BlogRepo    repository.BlogRepository
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewBlogService is the constructor for blogService.
func NewBlogService(params BlogServiceParams) usecase.BlogUsecase {
	return &blogService{
		blogRepo:    params.BlogRepo,
		commentRepo: params.CommentRepo,
		likeRepo:    params.LikeRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *blogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListBlogs returns one page of published posts, optionally narrowed by
// category or a search term.
func (srv *blogService) ListBlogs(ctx context.Context, input *usecase.ListBlogsInput, viewerID int64) (*usecase.BlogListOutput, error) {
	page, pageSize := normalizePaging(input.Page, input.PageSize)

	filter := repository.BlogFilter{
		Category:      input.Category,
		Search:        input.Search,
		PublishedOnly: true,
	}

	result, err := srv.blogRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs")
	}

	return srv.buildListOutput(ctx, result, page, pageSize, viewerID)
}

// GetBlog returns one post and counts the read.
func (srv *blogService) GetBlog(ctx context.Context, id int64, viewerID int64) (*usecase.BlogOutput, error) {
	blog, err := srv.blogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBlogNotFound, "get blog")
		}

		return nil, errors.Wrap(err, "failed to find blog by id")
	}

	if err := srv.blogRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, errors.Wrap(err, "failed to increment view count")
	}
	blog.ViewCount++

	return srv.buildOutput(ctx, blog, viewerID)
}

// CreateBlog persists a new post for the given author.
func (srv *blogService) CreateBlog(ctx context.Context, userID int64, input *usecase.CreateBlogInput) (*usecase.BlogOutput, error) {
	summary := input.Summary
	if summary == "" {
		summary = entity.GenerateSummary(input.Content)
	}

	blog := &entity.Blog{
		Title:           input.Title,
		Content:         input.Content,
		Summary:         summary,
		CoverImageURL:   input.CoverImageURL,
		Category:        input.Category,
		Tags:            input.Tags,
		IsPublished:     input.IsPublished,
		ReadTimeMinutes: entity.EstimateReadTime(input.Content),
		UserID:          userID,
	}
	if input.IsPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := srv.blogRepo.Create(ctx, blog); err != nil {
		return nil, errors.Wrap(err, "failed to create blog")
	}

	srv.log(ctx).Info("Blog created", slog.Int64("blogID", blog.ID), slog.Int64("userID", userID))

	return srv.buildOutput(ctx, blog, userID)
}

// UpdateBlog merges a partial update into an existing post. Only the author
// may update; a wrong caller gets the same outcome as a missing post.
func (srv *blogService) UpdateBlog(ctx context.Context, blogID, userID int64, input *usecase.UpdateBlogInput) (*usecase.BlogOutput, error) {
	blog, err := srv.loadOwnedBlog(ctx, blogID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Content != nil {
		blog.Content = *input.Content
		blog.ReadTimeMinutes = entity.EstimateReadTime(*input.Content)
	}
	if input.Summary != nil {
		blog.Summary = *input.Summary
	}
	if input.CoverImageURL != nil {
		blog.CoverImageURL = *input.CoverImageURL
	}
	if input.Category != nil {
		blog.Category = *input.Category
	}
	if input.Tags != nil {
		blog.Tags = *input.Tags
	}
	if input.IsPublished != nil {
		if *input.IsPublished && !blog.IsPublished {
			now := time.Now()
			blog.PublishedAt = &now
		}
		blog.IsPublished = *input.IsPublished
	}

	if err := srv.blogRepo.Update(ctx, blog); err != nil {
		return nil, errors.Wrap(err, "failed to update blog")
	}

	return srv.buildOutput(ctx, blog, userID)
}

// DeleteBlog removes a post owned by the caller.
func (srv *blogService) DeleteBlog(ctx context.Context, blogID, userID int64) error {
	blog, err := srv.loadOwnedBlog(ctx, blogID, userID)
	if err != nil {
		return err
	}

	if err := srv.blogRepo.Delete(ctx, blog.ID); err != nil {
		return errors.Wrap(err, "failed to delete blog")
	}

	srv.log(ctx).Info("Blog deleted", slog.Int64("blogID", blogID), slog.Int64("userID", userID))

	return nil
}

// ListUserBlogs returns one page of the caller's own posts, drafts included.
func (srv *blogService) ListUserBlogs(ctx context.Context, userID int64, page, pageSize int) (*usecase.BlogListOutput, error) {
	page, pageSize = normalizePaging(page, pageSize)

	result, err := srv.blogRepo.List(ctx, repository.BlogFilter{AuthorID: userID}, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user blogs")
	}

	return srv.buildListOutput(ctx, result, page, pageSize, userID)
}

// ToggleLike flips the caller's like on a post and reports the new state.
func (srv *blogService) ToggleLike(ctx context.Context, blogID, userID int64) (bool, error) {
	existing, err := srv.likeRepo.Find(ctx, blogID, userID)
	if err != nil {
		return false, errors.Wrap(err, "failed to find like")
	}

	if existing != nil {
		if err := srv.likeRepo.Delete(ctx, existing.ID); err != nil {
			return false, errors.Wrap(err, "failed to remove like")
		}

		return false, nil
	}

	like := &entity.BlogLike{BlogID: blogID, UserID: userID}
	if err := srv.likeRepo.Create(ctx, like); err != nil {
		return false, errors.Wrap(err, "failed to create like")
	}

	return true, nil
}

// AddComment attaches a comment to a post.
func (srv *blogService) AddComment(ctx context.Context, blogID, userID int64, input *usecase.CreateCommentInput) (*usecase.CommentOutput, error) {
	comment := &entity.Comment{
		Content: input.Content,
		BlogID:  blogID,
		UserID:  userID,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to create comment")
	}

	author, err := srv.author(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	return &usecase.CommentOutput{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author:    author,
	}, nil
}

// ListComments returns all comments on a post, oldest first.
func (srv *blogService) ListComments(ctx context.Context, blogID int64) ([]*usecase.CommentOutput, error) {
	comments, err := srv.commentRepo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	authors := make(map[int64]*usecase.Author)
	outputs := make([]*usecase.CommentOutput, 0, len(comments))
	for _, comment := range comments {
		author, err := srv.author(ctx, comment.UserID, authors)
		if err != nil {
			return nil, err
		}

		outputs = append(outputs, &usecase.CommentOutput{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			Author:    author,
		})
	}

	return outputs, nil
}

// DeleteComment removes a comment owned by the caller.
func (srv *blogService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := srv.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return errors.Wrap(domainerrors.ErrNotCommentOwner, "delete comment")
		}

		return errors.Wrap(err, "failed to find comment by id")
	}

	if comment.UserID != userID {
		return errors.Wrap(domainerrors.ErrNotCommentOwner, "delete comment")
	}

	if err := srv.commentRepo.Delete(ctx, commentID); err != nil {
		return errors.Wrap(err, "failed to delete comment")
	}

	return nil
}

// ListCategories returns the distinct categories across published posts.
func (srv *blogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := srv.blogRepo.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// loadOwnedBlog fetches a post and enforces ownership. Both a missing post and
// a foreign one map to the same forbidden outcome so callers cannot probe for
// other users' draft ids.
func (srv *blogService) loadOwnedBlog(ctx context.Context, blogID, userID int64) (*entity.Blog, error) {
	blog, err := srv.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotBlogOwner, "load owned blog")
		}

		return nil, errors.Wrap(err, "failed to find blog by id")
	}

	if blog.UserID != userID {
		srv.log(ctx).Warn("Ownership check failed", slog.Int64("blogID", blogID), slog.Int64("userID", userID))

		return nil, errors.Wrap(domainerrors.ErrNotBlogOwner, "load owned blog")
	}

	return blog, nil
}

// author resolves the display projection for a user id, consulting the cache
// when one is supplied.
func (srv *blogService) author(ctx context.Context, userID int64, cache map[int64]*usecase.Author) (*usecase.Author, error) {
	if cache != nil {
		if author, ok := cache[userID]; ok {
			return author, nil
		}
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load author")
	}

	author := &usecase.Author{
		ID:        user.ID,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
	if cache != nil {
		cache[userID] = author
	}

	return author, nil
}

func (srv *blogService) buildOutput(ctx context.Context, blog *entity.Blog, viewerID int64) (*usecase.BlogOutput, error) {
	stats, err := srv.blogRepo.Stats(ctx, []int64{blog.ID}, viewerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load blog stats")
	}

	author, err := srv.author(ctx, blog.UserID, nil)
	if err != nil {
		return nil, err
	}

	return mapBlogOutput(blog, stats[blog.ID], author), nil
}

func (srv *blogService) buildListOutput(ctx context.Context, page *repository.BlogPage, pageNum, pageSize int, viewerID int64) (*usecase.BlogListOutput, error) {
	ids := make([]int64, 0, len(page.Blogs))
	for _, blog := range page.Blogs {
		ids = append(ids, blog.ID)
	}

	stats := map[int64]repository.BlogStats{}
	if len(ids) > 0 {
		var err error
		stats, err = srv.blogRepo.Stats(ctx, ids, viewerID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load blog stats")
		}
	}

	authors := make(map[int64]*usecase.Author)
	items := make([]*usecase.BlogOutput, 0, len(page.Blogs))
	for _, blog := range page.Blogs {
		author, err := srv.author(ctx, blog.UserID, authors)
		if err != nil {
			return nil, err
		}
		items = append(items, mapBlogOutput(blog, stats[blog.ID], author))
	}

	return &usecase.BlogListOutput{
		Items:      items,
		TotalCount: page.Total,
		Page:       pageNum,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(page.Total) / float64(pageSize))),
	}, nil
}

func mapBlogOutput(blog *entity.Blog, stats repository.BlogStats, author *usecase.Author) *usecase.BlogOutput {
	return &usecase.BlogOutput{
		ID:              blog.ID,
		Title:           blog.Title,
		Content:         blog.Content,
		Summary:         blog.Summary,
		CoverImageURL:   blog.CoverImageURL,
		Category:        blog.Category,
		Tags:            blog.Tags,
		IsPublished:     blog.IsPublished,
		ViewCount:       blog.ViewCount,
		ReadTimeMinutes: blog.ReadTimeMinutes,
		LikeCount:       stats.LikeCount,
		CommentCount:    stats.CommentCount,
		IsLiked:         stats.Liked,
		CreatedAt:       blog.CreatedAt,
		PublishedAt:     blog.PublishedAt,
		Author:          author,
	}
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
