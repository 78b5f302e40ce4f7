package service

import (
	"context"

	"conduit/internal/cache"
	"conduit/internal/repository"

	"github.com/redis/go-redis/v9"
)

// TagService serves the distinct tag list, cached in Redis when available.
type TagService struct {
	articles repository.ArticleRepository
	rdb      *redis.Client
}

func NewTagService(articles repository.ArticleRepository, rdb *redis.Client) *TagService {
	return &TagService{articles: articles, rdb: rdb}
}

func (s *TagService) List(ctx context.Context) ([]string, error) {
	var tags []string
	err := cache.Aside(ctx, s.rdb, cache.TagsKey, &tags, cache.TagsTTL, func() error {
		var err error
		tags, err = s.articles.Tags(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// Invalidate drops the cached tag list after the set of articles changes.
func (s *TagService) Invalidate(ctx context.Context) {
	cache.Invalidate(ctx, s.rdb, cache.TagsKey)
}
