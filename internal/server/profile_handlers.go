package server

import (
	"conduit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProfileController serves public profiles and the follow relationship.
type ProfileController struct {
	profiles *service.ProfileService
	guards   guards
}

func (pc *ProfileController) RegisterRoutes(r fiber.Router) {
	r.Get("/profiles/:username", pc.loadProfile, pc.guards.optional, pc.Get)
	r.Post("/profiles/:username/follow", pc.loadProfile, pc.guards.required, pc.Follow)
	r.Delete("/profiles/:username/follow", pc.loadProfile, pc.guards.required, pc.Unfollow)
}

// loadProfile resolves :username before any guard runs.
func (pc *ProfileController) loadProfile(c *fiber.Ctx) error {
	user, err := pc.profiles.Lookup(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	c.Locals(profileLocal, user)
	return c.Next()
}

// Get handles GET /profiles/:username
// @Summary View a profile
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{profile=models.ProfileView}
// @Failure 404
// @Router /profiles/{username} [get]
func (pc *ProfileController) Get(c *fiber.Ctx) error {
	view, err := pc.profiles.View(c.UserContext(), localProfile(c), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": view})
}

// Follow handles POST /profiles/:username/follow
// @Summary Follow a user
// @Tags profiles
// @Produce json
// @Security TokenAuth
// @Param username path string true "Username"
// @Success 200 {object} object{profile=models.ProfileView}
// @Failure 401
// @Failure 404
// @Router /profiles/{username}/follow [post]
func (pc *ProfileController) Follow(c *fiber.Ctx) error {
	view, err := pc.profiles.Follow(c.UserContext(), viewerID(c), localProfile(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": view})
}

// Unfollow handles DELETE /profiles/:username/follow
// @Summary Unfollow a user
// @Tags profiles
// @Produce json
// @Security TokenAuth
// @Param username path string true "Username"
// @Success 200 {object} object{profile=models.ProfileView}
// @Failure 401
// @Failure 404
// @Router /profiles/{username}/follow [delete]
func (pc *ProfileController) Unfollow(c *fiber.Ctx) error {
	view, err := pc.profiles.Unfollow(c.UserContext(), viewerID(c), localProfile(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": view})
}
