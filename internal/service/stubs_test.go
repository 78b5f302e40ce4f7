package service

import (
	"context"
	"errors"
	"testing"

	"conduit/internal/models"
	"conduit/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository backed by an in-memory map.
type userRepoStub struct {
	byID       map[uint]*models.User
	favorites  map[uint][]uint
	following  map[uint][]uint
	getByIDErr error
	createFn   func(context.Context, *models.User) error
	updateFn   func(context.Context, *models.User) error
}

func newUserRepoStub(users ...*models.User) *userRepoStub {
	s := &userRepoStub{
		byID:      map[uint]*models.User{},
		favorites: map[uint][]uint{},
		following: map[uint][]uint{},
	}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *userRepoStub) find(match func(*models.User) bool, key any) (*models.User, error) {
	for _, u := range s.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("User", key)
}

func (s *userRepoStub) GetByID(_ context.Context, id uint) (*models.User, error) {
	if s.getByIDErr != nil {
		return nil, s.getByIDErr
	}
	return s.find(func(u *models.User) bool { return u.ID == id }, id)
}
func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Email == email }, email)
}
func (s *userRepoStub) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Username == username }, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = uint(len(s.byID) + 1)
	s.byID[user.ID] = user
	return nil
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	s.byID[user.ID] = user
	return nil
}
func (s *userRepoStub) LoadRelations(_ context.Context, user *models.User) error {
	user.FavoriteIDs = append([]uint(nil), s.favorites[user.ID]...)
	user.FollowingIDs = append([]uint(nil), s.following[user.ID]...)
	return nil
}
func (s *userRepoStub) Favorite(_ context.Context, user *models.User, articleID uint) error {
	user.Favorite(articleID)
	s.favorites[user.ID] = user.FavoriteIDs
	return nil
}
func (s *userRepoStub) Unfavorite(_ context.Context, user *models.User, articleID uint) error {
	user.Unfavorite(articleID)
	s.favorites[user.ID] = user.FavoriteIDs
	return nil
}
func (s *userRepoStub) Follow(_ context.Context, user *models.User, followeeID uint) error {
	user.Follow(followeeID)
	s.following[user.ID] = user.FollowingIDs
	return nil
}
func (s *userRepoStub) Unfollow(_ context.Context, user *models.User, followeeID uint) error {
	user.Unfollow(followeeID)
	s.following[user.ID] = user.FollowingIDs
	return nil
}

// articleRepoStub is a stub for repository.ArticleRepository.
type articleRepoStub struct {
	createFn    func(context.Context, *models.Article) error
	getBySlugFn func(context.Context, string) (*models.Article, error)
	updateFn    func(context.Context, *models.Article) error
	deleteFn    func(context.Context, *models.Article) error
	listFn      func(context.Context, repository.ArticleFilter) ([]*models.Article, int64, error)
	feedFn      func(context.Context, []uint, int, int) ([]*models.Article, int64, error)
	favCountFn  func(context.Context, *models.Article) error
	tagsFn      func(context.Context) ([]string, error)
}

func (s *articleRepoStub) Create(ctx context.Context, a *models.Article) error {
	return s.createFn(ctx, a)
}
func (s *articleRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *articleRepoStub) Update(ctx context.Context, a *models.Article) error {
	return s.updateFn(ctx, a)
}
func (s *articleRepoStub) Delete(ctx context.Context, a *models.Article) error {
	return s.deleteFn(ctx, a)
}
func (s *articleRepoStub) List(ctx context.Context, f repository.ArticleFilter) ([]*models.Article, int64, error) {
	return s.listFn(ctx, f)
}
func (s *articleRepoStub) Feed(ctx context.Context, ids []uint, limit, offset int) ([]*models.Article, int64, error) {
	return s.feedFn(ctx, ids, limit, offset)
}
func (s *articleRepoStub) UpdateFavoriteCount(ctx context.Context, a *models.Article) error {
	return s.favCountFn(ctx, a)
}
func (s *articleRepoStub) Tags(ctx context.Context) ([]string, error) {
	return s.tagsFn(ctx)
}

func noopArticleRepo() *articleRepoStub {
	return &articleRepoStub{
		createFn:    func(_ context.Context, a *models.Article) error { a.ID = 1; a.Slug = "stub-slug"; return nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Article, error) { return nil, models.NewNotFoundError("Article", slug) },
		updateFn:    func(_ context.Context, _ *models.Article) error { return nil },
		deleteFn:    func(_ context.Context, _ *models.Article) error { return nil },
		listFn: func(_ context.Context, _ repository.ArticleFilter) ([]*models.Article, int64, error) {
			return nil, 0, nil
		},
		feedFn: func(_ context.Context, _ []uint, _, _ int) ([]*models.Article, int64, error) {
			return nil, 0, nil
		},
		favCountFn: func(_ context.Context, _ *models.Article) error { return nil },
		tagsFn:     func(_ context.Context) ([]string, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	listFn    func(context.Context, uint) ([]*models.Comment, error)
	deleteFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByArticle(ctx context.Context, articleID uint) ([]*models.Comment, error) {
	return s.listFn(ctx, articleID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return nil, models.NewNotFoundError("Comment", id) },
		listFn:    func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// tokenStub issues predictable tokens.
type tokenStub struct{ err error }

func (s tokenStub) Generate(userID uint, username string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + username, nil
}

func assertCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}
