package service

import (
	"context"

	"conduit/internal/models"
	"conduit/internal/observability"
	"conduit/internal/repository"
	"conduit/internal/validation"
)

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID uint, username string) (string, error)
}

type UserService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateUserInput changes only the non-nil fields.
type UpdateUserInput struct {
	UserID   uint
	Username *string
	Email    *string
	Password *string
	Bio      *string
	Image    *string
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.AuthView, error) {
	if err := validation.Registration(in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	errs := validation.Errors{}
	if err := s.checkTaken(ctx, errs, "username", in.Username, s.users.GetByUsername); err != nil {
		return nil, err
	}
	if err := s.checkTaken(ctx, errs, "email", in.Email, s.users.GetByEmail); err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user := &models.User{Username: in.Username, Email: in.Email}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	observability.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.authView(user)
}

// Login never distinguishes an unknown email from a wrong password.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.AuthView, error) {
	errs := validation.Errors{}
	errs.Required("email", in.Email)
	errs.Required("password", in.Password)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if models.IsNotFound(err) {
			observability.AuthFailures.WithLabelValues("unknown_email").Inc()
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !user.ValidPassword(in.Password) {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return nil, invalidCredentials()
	}
	return s.authView(user)
}

func (s *UserService) Current(ctx context.Context, userID uint) (*models.AuthView, error) {
	user, err := loadActor(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return s.authView(user)
}

func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (*models.AuthView, error) {
	user, err := loadActor(ctx, s.users, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := validation.UserUpdate(in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Image != nil {
		user.Image = *in.Image
	}
	if in.Password != nil {
		if err := user.SetPassword(*in.Password); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.authView(user)
}

func (s *UserService) checkTaken(
	ctx context.Context,
	errs validation.Errors,
	field, value string,
	lookup func(context.Context, string) (*models.User, error),
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		errs.Add(field, validation.MsgTaken)
	case !models.IsNotFound(err):
		return err
	}
	return nil
}

func (s *UserService) authView(user *models.User) (*models.AuthView, error) {
	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	view := user.ToAuthView(token)
	return &view, nil
}

func invalidCredentials() error {
	return models.NewValidationError("email or password", validation.MsgInvalid)
}
