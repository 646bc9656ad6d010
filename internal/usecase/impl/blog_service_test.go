package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"blogapp/internal/domain/entity"
	domainerrors "blogapp/internal/domain/errors"
	"blogapp/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blogServiceFixtures holds all test dependencies for blog service tests.
type blogServiceFixtures struct {
	service  usecase.BlogUsecase
	userRepo *fakeUserRepo
	blogRepo *fakeBlogRepo
}

func createTestBlogService(t *testing.T) blogServiceFixtures {
	t.Helper()

	userRepo := newFakeUserRepo()
	commentRepo := newFakeCommentRepo()
	likeRepo := newFakeLikeRepo()
	blogRepo := newFakeBlogRepo(commentRepo, likeRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewBlogService(BlogServiceParams{
		BlogRepo:    blogRepo,
		CommentRepo: commentRepo,
		LikeRepo:    likeRepo,
		UserRepo:    userRepo,
		Logger:      logger,
	})

	return blogServiceFixtures{service: service, userRepo: userRepo, blogRepo: blogRepo}
}

func createTestAuthor(t *testing.T, fx blogServiceFixtures, name string) int64 {
	t.Helper()

	user := &entity.User{
		FullName: name,
		Email:    entity.NormalizeEmail(name + "@example.com"),
		Provider: entity.ProviderLocal,
	}
	require.NoError(t, fx.userRepo.Create(context.Background(), user))

	return user.ID
}

func createTestBlog(t *testing.T, fx blogServiceFixtures, authorID int64, published bool) *usecase.BlogOutput {
	t.Helper()

	output, err := fx.service.CreateBlog(context.Background(), authorID, &usecase.CreateBlogInput{
		Title:       "A Title",
		Content:     "Some content worth reading.",
		Category:    "go",
		IsPublished: published,
	})
	require.NoError(t, err)

	return output
}

func TestBlogService_CreateBlog_DerivesSummaryAndReadTime(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")

	output, err := fx.service.CreateBlog(context.Background(), authorID, &usecase.CreateBlogInput{
		Title:       "A Title",
		Content:     "<p>Hello world</p>",
		IsPublished: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", output.Summary)
	assert.Equal(t, 1, output.ReadTimeMinutes)
	assert.NotNil(t, output.PublishedAt)
	require.NotNil(t, output.Author)
	assert.Equal(t, authorID, output.Author.ID)
}

func TestBlogService_CreateBlog_DraftHasNoPublishTime(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")

	output := createTestBlog(t, fx, authorID, false)

	assert.False(t, output.IsPublished)
	assert.Nil(t, output.PublishedAt)
}

func TestBlogService_GetBlog_CountsView(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	created := createTestBlog(t, fx, authorID, true)

	first, err := fx.service.GetBlog(context.Background(), created.ID, 0)
	require.NoError(t, err)
	second, err := fx.service.GetBlog(context.Background(), created.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, first.ViewCount+1, second.ViewCount)
}

func TestBlogService_GetBlog_Unknown_NotFound(t *testing.T) {
	fx := createTestBlogService(t)

	_, err := fx.service.GetBlog(context.Background(), 42, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBlogNotFound))
}

func TestBlogService_ListBlogs_PublishedOnly(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	published := createTestBlog(t, fx, authorID, true)
	createTestBlog(t, fx, authorID, false)

	output, err := fx.service.ListBlogs(context.Background(), &usecase.ListBlogsInput{}, 0)
	require.NoError(t, err)

	require.Len(t, output.Items, 1)
	assert.Equal(t, published.ID, output.Items[0].ID)
	assert.EqualValues(t, 1, output.TotalCount)
}

func TestBlogService_ListBlogs_Paging(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	for range 15 {
		createTestBlog(t, fx, authorID, true)
	}

	output, err := fx.service.ListBlogs(context.Background(), &usecase.ListBlogsInput{Page: 2, PageSize: 10}, 0)
	require.NoError(t, err)

	assert.Len(t, output.Items, 5)
	assert.EqualValues(t, 15, output.TotalCount)
	assert.Equal(t, 2, output.TotalPages)
}

func TestBlogService_ListUserBlogs_IncludesDrafts(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	otherID := createTestAuthor(t, fx, "bob")
	createTestBlog(t, fx, authorID, true)
	createTestBlog(t, fx, authorID, false)
	createTestBlog(t, fx, otherID, true)

	output, err := fx.service.ListUserBlogs(context.Background(), authorID, 1, 10)
	require.NoError(t, err)

	assert.Len(t, output.Items, 2)
}

func TestBlogService_UpdateBlog_PartialMerge(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	created := createTestBlog(t, fx, authorID, false)

	title := "New Title"
	output, err := fx.service.UpdateBlog(context.Background(), created.ID, authorID, &usecase.UpdateBlogInput{
		Title: &title,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", output.Title)
	assert.Equal(t, created.Content, output.Content)
}

func TestBlogService_UpdateBlog_FirstPublishSetsTimestamp(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	created := createTestBlog(t, fx, authorID, false)

	published := true
	output, err := fx.service.UpdateBlog(context.Background(), created.ID, authorID, &usecase.UpdateBlogInput{
		IsPublished: &published,
	})
	require.NoError(t, err)
	require.NotNil(t, output.PublishedAt)
	firstPublish := *output.PublishedAt

	// Republishing keeps the original timestamp.
	output, err = fx.service.UpdateBlog(context.Background(), created.ID, authorID, &usecase.UpdateBlogInput{
		IsPublished: &published,
	})
	require.NoError(t, err)
	require.NotNil(t, output.PublishedAt)
	assert.Equal(t, firstPublish, *output.PublishedAt)
}

func TestBlogService_UpdateBlog_NotOwner_Forbidden(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	otherID := createTestAuthor(t, fx, "bob")
	created := createTestBlog(t, fx, authorID, true)

	title := "Hijacked"
	_, err := fx.service.UpdateBlog(context.Background(), created.ID, otherID, &usecase.UpdateBlogInput{
		Title: &title,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotBlogOwner))
}

func TestBlogService_DeleteBlog_RemovesDependents(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	created := createTestBlog(t, fx, authorID, true)

	_, err := fx.service.AddComment(context.Background(), created.ID, authorID, &usecase.CreateCommentInput{Content: "Nice."})
	require.NoError(t, err)
	_, err = fx.service.ToggleLike(context.Background(), created.ID, authorID)
	require.NoError(t, err)

	require.NoError(t, fx.service.DeleteBlog(context.Background(), created.ID, authorID))

	_, err = fx.service.GetBlog(context.Background(), created.ID, 0)
	require.Error(t, err)

	comments, err := fx.service.ListComments(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestBlogService_DeleteBlog_NotOwner_Forbidden(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	otherID := createTestAuthor(t, fx, "bob")
	created := createTestBlog(t, fx, authorID, true)

	err := fx.service.DeleteBlog(context.Background(), created.ID, otherID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotBlogOwner))
}

func TestBlogService_ToggleLike_Toggles(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	created := createTestBlog(t, fx, authorID, true)

	liked, err := fx.service.ToggleLike(context.Background(), created.ID, authorID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = fx.service.ToggleLike(context.Background(), created.ID, authorID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestBlogService_ToggleLike_ReflectedInStats(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	viewerID := createTestAuthor(t, fx, "bob")
	created := createTestBlog(t, fx, authorID, true)

	_, err := fx.service.ToggleLike(context.Background(), created.ID, viewerID)
	require.NoError(t, err)

	asViewer, err := fx.service.GetBlog(context.Background(), created.ID, viewerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, asViewer.LikeCount)
	assert.True(t, asViewer.IsLiked)

	asAnonymous, err := fx.service.GetBlog(context.Background(), created.ID, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, asAnonymous.LikeCount)
	assert.False(t, asAnonymous.IsLiked)
}

func TestBlogService_Comments_RoundTrip(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	commenterID := createTestAuthor(t, fx, "bob")
	created := createTestBlog(t, fx, authorID, true)

	first, err := fx.service.AddComment(context.Background(), created.ID, commenterID, &usecase.CreateCommentInput{Content: "First!"})
	require.NoError(t, err)
	_, err = fx.service.AddComment(context.Background(), created.ID, authorID, &usecase.CreateCommentInput{Content: "Thanks."})
	require.NoError(t, err)

	comments, err := fx.service.ListComments(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, commenterID, comments[0].Author.ID)
}

func TestBlogService_DeleteComment_NotOwner_Forbidden(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")
	otherID := createTestAuthor(t, fx, "bob")
	created := createTestBlog(t, fx, authorID, true)

	comment, err := fx.service.AddComment(context.Background(), created.ID, authorID, &usecase.CreateCommentInput{Content: "Mine."})
	require.NoError(t, err)

	err = fx.service.DeleteComment(context.Background(), comment.ID, otherID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotCommentOwner))

	require.NoError(t, fx.service.DeleteComment(context.Background(), comment.ID, authorID))
}

func TestBlogService_ListCategories_DistinctPublished(t *testing.T) {
	fx := createTestBlogService(t)
	authorID := createTestAuthor(t, fx, "alice")

	for _, tc := range []struct {
		category  string
		published bool
	}{
		{"go", true},
		{"go", true},
		{"databases", true},
		{"drafts-only", false},
	} {
		_, err := fx.service.CreateBlog(context.Background(), authorID, &usecase.CreateBlogInput{
			Title:       "A Title",
			Content:     "Content.",
			Category:    tc.category,
			IsPublished: tc.published,
		})
		require.NoError(t, err)
	}

	categories, err := fx.service.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"databases", "go"}, categories)
}
