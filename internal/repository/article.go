package repository

import (
	"context"

	"conduit/internal/models"
	"conduit/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const slugAttempts = 3

// ArticleFilter narrows List. Nil pointers mean "no filter".
type ArticleFilter struct {
	Tag         string
	AuthorID    *uint
	FavoritedBy *uint
	Limit       int
	Offset      int
}

// ArticleRepository defines persistence operations for articles and their tags.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, article *models.Article) error
	List(ctx context.Context, filter ArticleFilter) ([]*models.Article, int64, error)
	Feed(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Article, int64, error)
	// UpdateFavoriteCount recounts the users favoriting article and persists the result.
	UpdateFavoriteCount(ctx context.Context, article *models.Article) error
	Tags(ctx context.Context) ([]string, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create inserts article and its tags. A generated slug that collides is regenerated.
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	generated := article.Slug == ""
	for attempt := 1; ; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Create(article).Error; err != nil {
				return err
			}
			if len(article.Tags) == 0 {
				return nil
			}
			for i := range article.Tags {
				article.Tags[i].ArticleID = article.ID
			}
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&article.Tags).Error
		})
		if err == nil {
			return nil
		}
		if !isUniqueConstraintError(err) {
			return models.NewInternalError(err)
		}
		if !generated || attempt == slugAttempts {
			return takenError(err, "slug")
		}
		article.ID = 0
		article.Slug = models.NewSlug(article.Title)
	}
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, storeError(err, "Article", slug)
	}
	return &article, nil
}

// Update persists title, description and body. The slug is never rewritten.
func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Model(article).Updates(map[string]any{
		"title":       article.Title,
		"description": article.Description,
		"body":        article.Body,
	}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes article with its comments, favorites and tags.
func (r *articleRepository) Delete(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&models.Comment{}, &models.Favorite{}, &models.ArticleTag{}} {
			if err := tx.Where("article_id = ?", article.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Article{}, article.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]*models.Article, int64, error) {
	ctx, span := observability.StartSpan(ctx, "ArticleRepository", "List")
	articles, total, err := r.list(ctx, filter)
	observability.EndSpan(span, err)
	return articles, total, err
}

func (r *articleRepository) list(ctx context.Context, filter ArticleFilter) ([]*models.Article, int64, error) {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.Article{})
	if filter.Tag != "" {
		q = q.Where("id IN (?)", db.Model(&models.ArticleTag{}).Select("article_id").Where("tag = ?", filter.Tag))
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		q = q.Where("id IN (?)", db.Model(&models.Favorite{}).Select("article_id").Where("user_id = ?", *filter.FavoritedBy))
	}
	return r.page(q, filter.Limit, filter.Offset)
}

func (r *articleRepository) Feed(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Article, int64, error) {
	if len(authorIDs) == 0 {
		return []*models.Article{}, 0, nil
	}
	ctx, span := observability.StartSpan(ctx, "ArticleRepository", "Feed")
	q := r.db.WithContext(ctx).Model(&models.Article{}).Where("author_id IN ?", authorIDs)
	articles, total, err := r.page(q, limit, offset)
	observability.EndSpan(span, err)
	return articles, total, err
}

// page counts q and fetches one newest-first page of it.
func (r *articleRepository) page(q *gorm.DB, limit, offset int) ([]*models.Article, int64, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	articles := []*models.Article{}
	err := q.Preload("Author").
		Preload("Tags").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return articles, total, nil
}

func (r *articleRepository) UpdateFavoriteCount(ctx context.Context, article *models.Article) error {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Favorite{}).Where("article_id = ?", article.ID).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := db.Model(&models.Article{}).Where("id = ?", article.ID).
		UpdateColumn("favorites_count", count).Error; err != nil {
		return models.NewInternalError(err)
	}
	article.FavoritesCount = int(count)
	return nil
}

func (r *articleRepository) Tags(ctx context.Context) ([]string, error) {
	tags := []string{}
	if err := r.db.WithContext(ctx).Model(&models.ArticleTag{}).
		Distinct().Order("tag").Pluck("tag", &tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
