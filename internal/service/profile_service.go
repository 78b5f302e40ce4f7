package service

import (
	"context"

	"conduit/internal/models"
	"conduit/internal/repository"
)

type ProfileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Lookup resolves a username to its user.
func (s *ProfileService) Lookup(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// View projects target for viewerID; zero means anonymous.
func (s *ProfileService) View(ctx context.Context, target *models.User, viewerID uint) (models.ProfileView, error) {
	viewer, err := loadViewer(ctx, s.users, viewerID)
	if err != nil {
		return models.ProfileView{}, err
	}
	return target.ToProfileView(viewer), nil
}

func (s *ProfileService) Follow(ctx context.Context, actorID uint, target *models.User) (models.ProfileView, error) {
	actor, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return models.ProfileView{}, err
	}
	if actor.ID == target.ID {
		return models.ProfileView{}, models.NewValidationError("profile", "can't follow yourself")
	}
	if err := s.users.Follow(ctx, actor, target.ID); err != nil {
		return models.ProfileView{}, err
	}
	return target.ToProfileView(actor), nil
}

func (s *ProfileService) Unfollow(ctx context.Context, actorID uint, target *models.User) (models.ProfileView, error) {
	actor, err := loadActor(ctx, s.users, actorID)
	if err != nil {
		return models.ProfileView{}, err
	}
	if err := s.users.Unfollow(ctx, actor, target.ID); err != nil {
		return models.ProfileView{}, err
	}
	return target.ToProfileView(actor), nil
}
