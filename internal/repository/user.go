// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"strings"

	"conduit/internal/models"
	"conduit/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users and their relationships.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// LoadRelations fills FavoriteIDs and FollowingIDs.
	LoadRelations(ctx context.Context, user *models.User) error
	Favorite(ctx context.Context, user *models.User, articleID uint) error
	Unfavorite(ctx context.Context, user *models.User, articleID uint) error
	Follow(ctx context.Context, user *models.User, followeeID uint) error
	Unfollow(ctx context.Context, user *models.User, followeeID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, storeError(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, storeError(err, "User", email)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, storeError(err, "User", username)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return takenError(err, "username", "email")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return takenError(err, "username", "email")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) LoadRelations(ctx context.Context, user *models.User) error {
	db := r.db.WithContext(ctx)
	var favorites, following []uint
	if err := db.Model(&models.Favorite{}).Where("user_id = ?", user.ID).
		Order("created_at").Pluck("article_id", &favorites).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", user.ID).
		Order("created_at").Pluck("followee_id", &following).Error; err != nil {
		return models.NewInternalError(err)
	}
	user.FavoriteIDs = favorites
	user.FollowingIDs = following
	return nil
}

func (r *userRepository) Favorite(ctx context.Context, user *models.User, articleID uint) error {
	fav := &models.Favorite{UserID: user.ID, ArticleID: articleID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
		return models.NewInternalError(err)
	}
	user.Favorite(articleID)
	observability.RelationshipMutations.WithLabelValues("favorite", "add").Inc()
	return nil
}

func (r *userRepository) Unfavorite(ctx context.Context, user *models.User, articleID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", user.ID, articleID).
		Delete(&models.Favorite{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	user.Unfavorite(articleID)
	observability.RelationshipMutations.WithLabelValues("favorite", "remove").Inc()
	return nil
}

func (r *userRepository) Follow(ctx context.Context, user *models.User, followeeID uint) error {
	follow := &models.Follow{FollowerID: user.ID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
		return models.NewInternalError(err)
	}
	user.Follow(followeeID)
	observability.RelationshipMutations.WithLabelValues("follow", "add").Inc()
	return nil
}

func (r *userRepository) Unfollow(ctx context.Context, user *models.User, followeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", user.ID, followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	user.Unfollow(followeeID)
	observability.RelationshipMutations.WithLabelValues("follow", "remove").Inc()
	return nil
}
