// Package service holds the business rules between HTTP handlers and repositories.
package service

import (
	"context"

	"conduit/internal/models"
	"conduit/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// loadActor re-loads the acting user with its relationships.
// A token for a user that no longer exists is treated as unauthenticated.
func loadActor(ctx context.Context, users repository.UserRepository, id uint) (*models.User, error) {
	if id == 0 {
		return nil, models.NewUnauthenticatedError("authorization required")
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthenticatedError("user no longer exists")
		}
		return nil, err
	}
	if err := users.LoadRelations(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// loadViewer returns the viewing user, or nil for anonymous requests and vanished users.
func loadViewer(ctx context.Context, users repository.UserRepository, id uint) (*models.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := loadActor(ctx, users, id)
	if models.ErrorCode(err) == models.CodeUnauthenticated {
		return nil, nil
	}
	return user, err
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
