package impl

import (
	"context"
	"sort"
	"strconv"
	"time"

	"blogapp/internal/domain/entity"
	"blogapp/internal/domain/repository"
	"blogapp/internal/domain/service"
)

// The persistence fakes below back the service tests with plain maps. They
// enforce the same uniqueness rules as the real indexes so the services'
// race-handling paths stay testable.

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByProvider(_ context.Context, provider, providerID string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Provider == provider && user.ProviderID == providerID {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateUser
		}
		if user.ProviderID != "" && existing.Provider == user.Provider && existing.ProviderID == user.ProviderID {
			return repository.ErrDuplicateUser
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

type fakeBlogRepo struct {
	blogs    map[int64]*entity.Blog
	comments *fakeCommentRepo
	likes    *fakeLikeRepo
	nextID   int64
}

func newFakeBlogRepo(comments *fakeCommentRepo, likes *fakeLikeRepo) *fakeBlogRepo {
	return &fakeBlogRepo{
		blogs:    make(map[int64]*entity.Blog),
		comments: comments,
		likes:    likes,
		nextID:   1,
	}
}

func (r *fakeBlogRepo) FindByID(_ context.Context, id int64) (*entity.Blog, error) {
	blog, ok := r.blogs[id]
	if !ok {
		return nil, repository.ErrBlogNotFound
	}

	clone := *blog

	return &clone, nil
}

func (r *fakeBlogRepo) List(_ context.Context, filter repository.BlogFilter, page, pageSize int) (*repository.BlogPage, error) {
	var matched []*entity.Blog
	for _, blog := range r.blogs {
		if filter.PublishedOnly && !blog.IsPublished {
			continue
		}
		if filter.AuthorID != 0 && blog.UserID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && blog.Category != filter.Category {
			continue
		}
		clone := *blog
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &repository.BlogPage{Blogs: matched[start:end], Total: total}, nil
}

func (r *fakeBlogRepo) Create(_ context.Context, blog *entity.Blog) error {
	blog.ID = r.nextID
	r.nextID++
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	clone := *blog
	r.blogs[blog.ID] = &clone

	return nil
}

func (r *fakeBlogRepo) Update(_ context.Context, blog *entity.Blog) error {
	if _, ok := r.blogs[blog.ID]; !ok {
		return repository.ErrBlogNotFound
	}

	blog.UpdatedAt = time.Now()
	clone := *blog
	r.blogs[blog.ID] = &clone

	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.blogs[id]; !ok {
		return repository.ErrBlogNotFound
	}

	delete(r.blogs, id)
	for commentID, comment := range r.comments.comments {
		if comment.BlogID == id {
			delete(r.comments.comments, commentID)
		}
	}
	for likeID, like := range r.likes.likes {
		if like.BlogID == id {
			delete(r.likes.likes, likeID)
		}
	}

	return nil
}

func (r *fakeBlogRepo) IncrementViewCount(_ context.Context, id int64) error {
	blog, ok := r.blogs[id]
	if !ok {
		return repository.ErrBlogNotFound
	}

	blog.ViewCount++

	return nil
}

func (r *fakeBlogRepo) Stats(_ context.Context, blogIDs []int64, viewerID int64) (map[int64]repository.BlogStats, error) {
	stats := make(map[int64]repository.BlogStats, len(blogIDs))
	for _, blogID := range blogIDs {
		entry := repository.BlogStats{}
		for _, like := range r.likes.likes {
			if like.BlogID == blogID {
				entry.LikeCount++
				if viewerID != 0 && like.UserID == viewerID {
					entry.Liked = true
				}
			}
		}
		for _, comment := range r.comments.comments {
			if comment.BlogID == blogID {
				entry.CommentCount++
			}
		}
		stats[blogID] = entry
	}

	return stats, nil
}

func (r *fakeBlogRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, blog := range r.blogs {
		if blog.IsPublished && blog.Category != "" && !seen[blog.Category] {
			seen[blog.Category] = true
			categories = append(categories, blog.Category)
		}
	}
	sort.Strings(categories)

	return categories, nil
}

type fakeCommentRepo struct {
	comments map[int64]*entity.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*entity.Comment), nextID: 1}
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}

	clone := *comment

	return &clone, nil
}

func (r *fakeCommentRepo) ListByBlog(_ context.Context, blogID int64) ([]*entity.Comment, error) {
	var matched []*entity.Comment
	for _, comment := range r.comments {
		if comment.BlogID == blogID {
			clone := *comment
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	return matched, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone

	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}

	delete(r.comments, id)

	return nil
}

type fakeLikeRepo struct {
	likes  map[int64]*entity.BlogLike
	nextID int64
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[int64]*entity.BlogLike), nextID: 1}
}

func (r *fakeLikeRepo) Find(_ context.Context, blogID, userID int64) (*entity.BlogLike, error) {
	for _, like := range r.likes {
		if like.BlogID == blogID && like.UserID == userID {
			clone := *like

			return &clone, nil
		}
	}

	return nil, nil
}

func (r *fakeLikeRepo) Create(_ context.Context, like *entity.BlogLike) error {
	like.ID = r.nextID
	r.nextID++
	like.CreatedAt = time.Now()
	clone := *like
	r.likes[like.ID] = &clone

	return nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, id int64) error {
	delete(r.likes, id)

	return nil
}

// fakeHasher trades bcrypt for a reversible marker so tests stay fast.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues deterministic credentials keyed by user id.
type fakeTokenService struct{}

func (fakeTokenService) IssueAccessToken(user *entity.User) (string, error) {
	return "access-" + strconv.FormatInt(user.ID, 10), nil
}

func (fakeTokenService) IssueRefreshToken() (string, error) {
	return "refresh-token", nil
}

func (fakeTokenService) ValidateAccessToken(string) (*service.AccessClaims, error) {
	return nil, nil
}
