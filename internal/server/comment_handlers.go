package server

import (
	"strconv"

	"conduit/internal/models"
	"conduit/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// loadComment resolves :id. A malformed id is reported the same way as a missing comment.
func (ac *ArticleController) loadComment(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return models.NewNotFoundError("Comment", raw)
	}
	comment, err := ac.comments.Lookup(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	c.Locals(commentLocal, comment)
	return c.Next()
}

// ListComments handles GET /articles/:slug/comments
// @Summary List an article's comments, newest first
// @Tags comments
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} object{comments=[]models.CommentView}
// @Failure 404
// @Router /articles/{slug}/comments [get]
func (ac *ArticleController) ListComments(c *fiber.Ctx) error {
	views, err := ac.comments.List(c.UserContext(), localArticle(c), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"comments": views})
}

// CreateComment handles POST /articles/:slug/comments
// @Summary Comment on an article
// @Tags comments
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Slug"
// @Param request body commentRequest true "Comment"
// @Success 200 {object} object{comment=models.CommentView}
// @Failure 401
// @Failure 404
// @Failure 422 {object} object{errors=map[string]string}
// @Router /articles/{slug}/comments [post]
func (ac *ArticleController) CreateComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := ac.comments.Create(c.UserContext(), service.CreateCommentInput{
		AuthorID: viewerID(c),
		Article:  localArticle(c),
		Body:     req.Comment.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"comment": view})
}

// DeleteComment handles DELETE /articles/:slug/comments/:id
// @Summary Delete a comment
// @Tags comments
// @Security TokenAuth
// @Param slug path string true "Slug"
// @Param id path int true "Comment id"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Router /articles/{slug}/comments/{id} [delete]
func (ac *ArticleController) DeleteComment(c *fiber.Ctx) error {
	err := ac.comments.Delete(c.UserContext(), service.DeleteCommentInput{
		ActorID: viewerID(c),
		Article: localArticle(c),
		Comment: localComment(c),
	})
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
