package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"blogapp/internal/delivery/http/middleware"
	"blogapp/internal/delivery/http/response"
	domainerrors "blogapp/internal/domain/errors"
	"blogapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BlogHandler holds dependencies for the blog, comment and like endpoints.
type BlogHandler struct {
	uc     usecase.BlogUsecase
	logger *slog.Logger
}

// NewBlogHandler is the constructor for BlogHandler, injected by Fx.
func NewBlogHandler(uc usecase.BlogUsecase, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		uc:     uc,
		logger: logger,
	}
}

// List handles the public blog listing with paging, category and search filters.
func (h *BlogHandler) List(c echo.Context) error {
	var input usecase.ListBlogsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing parameters")
	}

	output, err := h.uc.ListBlogs(c.Request().Context(), &input, middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Blogs retrieved successfully")
}

// Categories lists the distinct categories across published posts.
func (h *BlogHandler) Categories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories retrieved successfully")
}

// Get handles the blog detail request. Each read bumps the view counter.
func (h *BlogHandler) Get(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetBlog(c.Request().Context(), blogID, middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Blog retrieved successfully")
}

// Create handles the blog creation request.
func (h *BlogHandler) Create(c echo.Context) error {
	var input *usecase.CreateBlogInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid blog input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.CreateBlog(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Blog created successfully")
}

// Update handles a partial update of an owned blog post.
func (h *BlogHandler) Update(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateBlogInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid blog input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.UpdateBlog(c.Request().Context(), blogID, middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Blog updated successfully")
}

// Delete handles the removal of an owned blog post.
func (h *BlogHandler) Delete(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteBlog(c.Request().Context(), blogID, middleware.UserID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Blog deleted successfully")
}

// ListMine lists the authenticated user's own posts, drafts included.
func (h *BlogHandler) ListMine(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	output, err := h.uc.ListUserBlogs(c.Request().Context(), middleware.UserID(c), page, pageSize)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Blogs retrieved successfully")
}

// ToggleLike flips the caller's like on a post and reports the new state.
func (h *BlogHandler) ToggleLike(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.uc.ToggleLike(c.Request().Context(), blogID, middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Blog unliked"
	if liked {
		message = "Blog liked"
	}

	return response.Success(c, http.StatusOK, map[string]bool{"liked": liked}, message)
}

// AddComment attaches a comment to a post.
func (h *BlogHandler) AddComment(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.CreateCommentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.AddComment(c.Request().Context(), blogID, middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Comment added successfully")
}

// ListComments lists all comments on a post, oldest first.
func (h *BlogHandler) ListComments(c echo.Context) error {
	blogID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.uc.ListComments(c.Request().Context(), blogID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comments, "Comments retrieved successfully")
}

// DeleteComment removes the caller's own comment.
func (h *BlogHandler) DeleteComment(c echo.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteComment(c.Request().Context(), commentID, middleware.UserID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}

// pathID parses a numeric path parameter. A malformed id is a validation
// failure, not a missing resource.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " parameter")
	}

	return id, nil
}
