package seed

import (
	"context"
	"fmt"
	"strings"

	"conduit/internal/auth"
	"conduit/internal/models"
	"conduit/internal/observability"
	"conduit/internal/repository"
	"conduit/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Summary counts what a seeding run created.
type Summary struct {
	Users     int
	Articles  int
	Comments  int
	Follows   int
	Favorites int
}

// Seeder writes fixtures through the same services the HTTP API uses,
// so seeded data obeys every validation and ownership rule.
type Seeder struct {
	users    *service.UserService
	profiles *service.ProfileService
	articles *service.ArticleService
	comments *service.CommentService
}

func New(db *gorm.DB, rdb *redis.Client, secret string) *Seeder {
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	tags := service.NewTagService(articleRepo, rdb)
	return &Seeder{
		users:    service.NewUserService(userRepo, auth.NewTokenService(secret)),
		profiles: service.NewProfileService(userRepo),
		articles: service.NewArticleService(articleRepo, userRepo, tags),
		comments: service.NewCommentService(repository.NewCommentRepository(db), userRepo),
	}
}

// Apply creates the fixture users, relationships and articles. Users that already
// exist are reused, so applying the same fixtures twice only adds articles.
func (s *Seeder) Apply(ctx context.Context, fx *Fixtures) (Summary, error) {
	var sum Summary
	ids := make(map[string]uint, len(fx.Users))

	for _, u := range fx.Users {
		id, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return sum, fmt.Errorf("user %s: %w", u.Username, err)
		}
		ids[strings.ToLower(u.Username)] = id
		if created {
			sum.Users++
		}
	}

	for _, u := range fx.Users {
		for _, name := range u.Follows {
			target, err := s.profiles.Lookup(ctx, name)
			if err != nil {
				return sum, fmt.Errorf("follow %s: %w", name, err)
			}
			if _, err := s.profiles.Follow(ctx, ids[strings.ToLower(u.Username)], target); err != nil {
				return sum, fmt.Errorf("%s follow %s: %w", u.Username, name, err)
			}
			sum.Follows++
		}
	}

	for _, a := range fx.Articles {
		view, err := s.articles.Create(ctx, service.CreateArticleInput{
			AuthorID:    ids[strings.ToLower(a.Author)],
			Title:       a.Title,
			Description: a.Description,
			Body:        a.Body,
			TagList:     a.Tags,
		})
		if err != nil {
			return sum, fmt.Errorf("article %q: %w", a.Title, err)
		}
		sum.Articles++

		article, err := s.articles.Lookup(ctx, view.Slug)
		if err != nil {
			return sum, err
		}
		for _, name := range a.FavoritedBy {
			if _, err := s.articles.Favorite(ctx, ids[strings.ToLower(name)], article); err != nil {
				return sum, fmt.Errorf("favorite %q by %s: %w", a.Title, name, err)
			}
			sum.Favorites++
		}
		for _, c := range a.Comments {
			_, err := s.comments.Create(ctx, service.CreateCommentInput{
				AuthorID: ids[strings.ToLower(c.Author)],
				Article:  article,
				Body:     c.Body,
			})
			if err != nil {
				return sum, fmt.Errorf("comment on %q: %w", a.Title, err)
			}
			sum.Comments++
		}
	}

	observability.Logger.InfoContext(ctx, "seeding complete",
		"users", sum.Users, "articles", sum.Articles, "comments", sum.Comments,
		"follows", sum.Follows, "favorites", sum.Favorites)
	return sum, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u UserFixture) (uint, bool, error) {
	if existing, err := s.profiles.Lookup(ctx, u.Username); err == nil {
		return existing.ID, false, nil
	} else if !models.IsNotFound(err) {
		return 0, false, err
	}

	password := u.Password
	if password == "" {
		password = DefaultPassword
	}
	if _, err := s.users.Register(ctx, service.RegisterInput{
		Username: u.Username,
		Email:    u.Email,
		Password: password,
	}); err != nil {
		return 0, false, err
	}

	created, err := s.profiles.Lookup(ctx, u.Username)
	if err != nil {
		return 0, false, err
	}
	if u.Bio != "" || u.Image != "" {
		in := service.UpdateUserInput{UserID: created.ID}
		if u.Bio != "" {
			in.Bio = &u.Bio
		}
		if u.Image != "" {
			in.Image = &u.Image
		}
		if _, err := s.users.Update(ctx, in); err != nil {
			return 0, false, err
		}
	}
	return created.ID, true, nil
}
