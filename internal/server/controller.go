package server

import (
	"conduit/internal/middleware"
	"conduit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Controller mounts one resource's routes.
type Controller interface {
	RegisterRoutes(r fiber.Router)
}

// guards are the two modes of the token guard, shared by every controller.
type guards struct {
	required fiber.Handler
	optional fiber.Handler
}

// Locals set by the path-parameter pre-loaders.
const (
	profileLocal = "profile"
	articleLocal = "article"
	commentLocal = "comment"
)

// bind decodes the JSON body into dst. Malformed bodies are reported as a validation error.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return models.NewValidationError("body", "is invalid")
	}
	return nil
}

// viewerID is the authenticated user's id, or 0 for anonymous requests.
func viewerID(c *fiber.Ctx) uint {
	if claims, ok := middleware.Payload(c); ok {
		return claims.ID
	}
	return 0
}

func localArticle(c *fiber.Ctx) *models.Article {
	return c.Locals(articleLocal).(*models.Article)
}

func localProfile(c *fiber.Ctx) *models.User {
	return c.Locals(profileLocal).(*models.User)
}

func localComment(c *fiber.Ctx) *models.Comment {
	return c.Locals(commentLocal).(*models.Comment)
}
