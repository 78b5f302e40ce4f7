package service

import (
	"context"

	"conduit/internal/models"
	"conduit/internal/repository"
	"conduit/internal/validation"
)

type ArticleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	tags     *TagService
}

// ListArticlesInput filters the public article list. Empty strings mean "no filter".
type ListArticlesInput struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
	ViewerID  uint
}

type CreateArticleInput struct {
	AuthorID    uint
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateArticleInput changes only the non-nil fields.
type UpdateArticleInput struct {
	ActorID     uint
	Article     *models.Article
	Title       *string
	Description *string
	Body        *string
}

type ArticleList struct {
	Articles      []models.ArticleView `json:"articles"`
	ArticlesCount int64                `json:"articlesCount"`
}

func NewArticleService(
	articles repository.ArticleRepository,
	users repository.UserRepository,
	tags *TagService,
) *ArticleService {
	return &ArticleService{articles: articles, users: users, tags: tags}
}

// Lookup resolves a slug to its article with author and tags loaded.
func (s *ArticleService) Lookup(ctx context.Context, slug string) (*models.Article, error) {
	return s.articles.GetBySlug(ctx, slug)
}

// List applies all filters together. A filter naming an unknown user matches nothing.
func (s *ArticleService) List(ctx context.Context, in ListArticlesInput) (*ArticleList, error) {
	filter := repository.ArticleFilter{Tag: in.Tag}
	filter.Limit, filter.Offset = normalizePage(in.Limit, in.Offset)

	if in.Author != "" {
		author, err := s.users.GetByUsername(ctx, in.Author)
		if models.IsNotFound(err) {
			return emptyList(), nil
		}
		if err != nil {
			return nil, err
		}
		filter.AuthorID = &author.ID
	}
	if in.Favorited != "" {
		fan, err := s.users.GetByUsername(ctx, in.Favorited)
		if models.IsNotFound(err) {
			return emptyList(), nil
		}
		if err != nil {
			return nil, err
		}
		filter.FavoritedBy = &fan.ID
	}

	viewer, err := loadViewer(ctx, s.users, in.ViewerID)
	if err != nil {
		return nil, err
	}
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toList(articles, total, viewer), nil
}

// Feed lists articles written by users the viewer follows.
func (s *ArticleService) Feed(ctx context.Context, viewerID uint, limit, offset int) (*ArticleList, error) {
	viewer, err := loadActor(ctx, s.users, viewerID)
	if err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)
	articles, total, err := s.articles.Feed(ctx, viewer.FollowingIDs, limit, offset)
	if err != nil {
		return nil, err
	}
	return toList(articles, total, viewer), nil
}

func (s *ArticleService) View(ctx context.Context, article *models.Article, viewerID uint) (models.ArticleView, error) {
	viewer, err := loadViewer(ctx, s.users, viewerID)
	if err != nil {
		return models.ArticleView{}, err
	}
	return article.ToView(viewer), nil
}

func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (models.ArticleView, error) {
	author, err := loadActor(ctx, s.users, in.AuthorID)
	if err != nil {
		return models.ArticleView{}, err
	}

	errs := validation.Errors{}
	errs.Required("title", in.Title)
	errs.Required("description", in.Description)
	errs.Required("body", in.Body)
	if err := errs.Err(); err != nil {
		return models.ArticleView{}, err
	}

	article := &models.Article{
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		AuthorID:    author.ID,
	}
	article.SetTags(in.TagList)
	if err := s.articles.Create(ctx, article); err != nil {
		return models.ArticleView{}, err
	}
	s.tags.Invalidate(ctx)

	article.Author = *author
	return article.ToView(author), nil
}

func (s *ArticleService) Update(ctx context.Context, in UpdateArticleInput) (models.ArticleView, error) {
	actor, err := s.owner(ctx, in.ActorID, in.Article.AuthorID)
	if err != nil {
		return models.ArticleView{}, err
	}

	errs := validation.Errors{}
	article := in.Article
	if in.Title != nil && errs.Required("title", *in.Title) {
		article.Title = *in.Title
	}
	if in.Description != nil && errs.Required("description", *in.Description) {
		article.Description = *in.Description
	}
	if in.Body != nil && errs.Required("body", *in.Body) {
		article.Body = *in.Body
	}
	if err := errs.Err(); err != nil {
		return models.ArticleView{}, err
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return models.ArticleView{}, err
	}
	updated, err := s.articles.GetBySlug(ctx, article.Slug)
	if err != nil {
		return models.ArticleView{}, err
	}
	return updated.ToView(actor), nil
}

func (s *ArticleService) Delete(ctx context.Context, actorID uint, article *models.Article) error {
	if _, err := s.owner(ctx, actorID, article.AuthorID); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, article); err != nil {
		return err
	}
	s.tags.Invalidate(ctx)
	return nil
}

func (s *ArticleService) Favorite(ctx context.Context, actorID uint, article *models.Article) (models.ArticleView, error) {
	actor, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return models.ArticleView{}, err
	}
	if err := s.users.Favorite(ctx, actor, article.ID); err != nil {
		return models.ArticleView{}, err
	}
	if err := s.articles.UpdateFavoriteCount(ctx, article); err != nil {
		return models.ArticleView{}, err
	}
	return article.ToView(actor), nil
}

func (s *ArticleService) Unfavorite(ctx context.Context, actorID uint, article *models.Article) (models.ArticleView, error) {
	actor, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return models.ArticleView{}, err
	}
	if err := s.users.Unfavorite(ctx, actor, article.ID); err != nil {
		return models.ArticleView{}, err
	}
	if err := s.articles.UpdateFavoriteCount(ctx, article); err != nil {
		return models.ArticleView{}, err
	}
	return article.ToView(actor), nil
}

// owner loads the actor and requires it to be authorID.
func (s *ArticleService) owner(ctx context.Context, actorID, authorID uint) (*models.User, error) {
	actor, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return nil, err
	}
	if actor.ID != authorID {
		return nil, models.NewForbiddenError("only the author may change this article")
	}
	return actor, nil
}

func toList(articles []*models.Article, total int64, viewer *models.User) *ArticleList {
	views := make([]models.ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, a.ToView(viewer))
	}
	return &ArticleList{Articles: views, ArticlesCount: total}
}

func emptyList() *ArticleList {
	return &ArticleList{Articles: []models.ArticleView{}}
}
