package server

import (
	"conduit/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TagsController struct {
	tags *service.TagService
}

func (tc *TagsController) RegisterRoutes(r fiber.Router) {
	r.Get("/tags", tc.List)
}

// List handles GET /tags
// @Summary Distinct tags across all articles
// @Tags tags
// @Produce json
// @Success 200 {object} object{tags=[]string}
// @Router /tags [get]
func (tc *TagsController) List(c *fiber.Ctx) error {
	tags, err := tc.tags.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tags": tags})
}
