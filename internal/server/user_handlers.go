package server

import (
	"time"

	"conduit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserController serves registration, login and the authenticated user's own record.
type UserController struct {
	users  *service.UserService
	guards guards
	limit  func(name string, n int, window time.Duration) fiber.Handler
}

type registerRequest struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

func (uc *UserController) RegisterRoutes(r fiber.Router) {
	r.Post("/users", uc.limit("register", 5, 10*time.Minute), uc.Register)
	r.Post("/users/login", uc.limit("login", 10, 5*time.Minute), uc.Login)
	r.Get("/user", uc.guards.required, uc.Current)
	r.Put("/user", uc.guards.required, uc.Update)
}

// Register handles POST /users
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "New user"
// @Success 200 {object} object{user=models.AuthView}
// @Failure 422 {object} object{errors=map[string]string}
// @Router /users [post]
func (uc *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := uc.users.Register(c.UserContext(), service.RegisterInput{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: req.User.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": view})
}

// Login handles POST /users/login
// @Summary Authenticate and issue a token
// @Tags users
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} object{user=models.AuthView}
// @Failure 422 {object} object{errors=map[string]string}
// @Router /users/login [post]
func (uc *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := uc.users.Login(c.UserContext(), service.LoginInput{
		Email:    req.User.Email,
		Password: req.User.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": view})
}

// Current handles GET /user
// @Summary Current user
// @Tags users
// @Produce json
// @Security TokenAuth
// @Success 200 {object} object{user=models.AuthView}
// @Failure 401
// @Router /user [get]
func (uc *UserController) Current(c *fiber.Ctx) error {
	view, err := uc.users.Current(c.UserContext(), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": view})
}

// Update handles PUT /user. Only the fields present in the body change.
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body updateUserRequest true "Fields to change"
// @Success 200 {object} object{user=models.AuthView}
// @Failure 401
// @Failure 422 {object} object{errors=map[string]string}
// @Router /user [put]
func (uc *UserController) Update(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := uc.users.Update(c.UserContext(), service.UpdateUserInput{
		UserID:   viewerID(c),
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: req.User.Password,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": view})
}
