package server

import (
	"conduit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ArticleController serves articles, favorites and the comments nested under an article.
type ArticleController struct {
	articles *service.ArticleService
	comments *service.CommentService
	guards   guards
}

type articleRequest struct {
	Article struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Body        *string  `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

func (ac *ArticleController) RegisterRoutes(r fiber.Router) {
	r.Get("/articles", ac.guards.optional, ac.List)
	// /feed must be registered before /:slug
	r.Get("/articles/feed", ac.guards.required, ac.Feed)
	r.Post("/articles", ac.guards.required, ac.Create)

	r.Get("/articles/:slug", ac.loadArticle, ac.guards.optional, ac.Get)
	r.Put("/articles/:slug", ac.loadArticle, ac.guards.required, ac.Update)
	r.Delete("/articles/:slug", ac.loadArticle, ac.guards.required, ac.Delete)

	r.Post("/articles/:slug/favorite", ac.loadArticle, ac.guards.required, ac.Favorite)
	r.Delete("/articles/:slug/favorite", ac.loadArticle, ac.guards.required, ac.Unfavorite)

	r.Get("/articles/:slug/comments", ac.loadArticle, ac.guards.optional, ac.ListComments)
	r.Post("/articles/:slug/comments", ac.loadArticle, ac.guards.required, ac.CreateComment)
	r.Delete("/articles/:slug/comments/:id", ac.loadArticle, ac.loadComment, ac.guards.required, ac.DeleteComment)
}

// loadArticle resolves :slug before any guard runs.
func (ac *ArticleController) loadArticle(c *fiber.Ctx) error {
	article, err := ac.articles.Lookup(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	c.Locals(articleLocal, article)
	return c.Next()
}

// List handles GET /articles
// @Summary List articles
// @Description Filters combine; an unknown author or favorited username yields an empty list.
// @Tags articles
// @Produce json
// @Param tag query string false "Tag"
// @Param author query string false "Author username"
// @Param favorited query string false "Username that favorited the article"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ArticleList
// @Router /articles [get]
func (ac *ArticleController) List(c *fiber.Ctx) error {
	list, err := ac.articles.List(c.UserContext(), service.ListArticlesInput{
		Tag:       c.Query("tag"),
		Author:    c.Query("author"),
		Favorited: c.Query("favorited"),
		Limit:     c.QueryInt("limit", 0),
		Offset:    c.QueryInt("offset", 0),
		ViewerID:  viewerID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Feed handles GET /articles/feed
// @Summary Articles by followed authors
// @Tags articles
// @Produce json
// @Security TokenAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ArticleList
// @Failure 401
// @Router /articles/feed [get]
func (ac *ArticleController) Feed(c *fiber.Ctx) error {
	list, err := ac.articles.Feed(c.UserContext(), viewerID(c), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Create handles POST /articles
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body articleRequest true "Article"
// @Success 200 {object} object{article=models.ArticleView}
// @Failure 401
// @Failure 422 {object} object{errors=map[string]string}
// @Router /articles [post]
func (ac *ArticleController) Create(c *fiber.Ctx) error {
	var req articleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := ac.articles.Create(c.UserContext(), service.CreateArticleInput{
		AuthorID:    viewerID(c),
		Title:       deref(req.Article.Title),
		Description: deref(req.Article.Description),
		Body:        deref(req.Article.Body),
		TagList:     req.Article.TagList,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"article": view})
}

// Get handles GET /articles/:slug
// @Summary Fetch an article
// @Tags articles
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} object{article=models.ArticleView}
// @Failure 404
// @Router /articles/{slug} [get]
func (ac *ArticleController) Get(c *fiber.Ctx) error {
	view, err := ac.articles.View(c.UserContext(), localArticle(c), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"article": view})
}

// Update handles PUT /articles/:slug. The slug never changes.
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Slug"
// @Param request body articleRequest true "Fields to change"
// @Success 200 {object} object{article=models.ArticleView}
// @Failure 401
// @Failure 403
// @Failure 404
// @Router /articles/{slug} [put]
func (ac *ArticleController) Update(c *fiber.Ctx) error {
	var req articleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := ac.articles.Update(c.UserContext(), service.UpdateArticleInput{
		ActorID:     viewerID(c),
		Article:     localArticle(c),
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"article": view})
}

// Delete handles DELETE /articles/:slug
// @Summary Delete an article
// @Tags articles
// @Security TokenAuth
// @Param slug path string true "Slug"
// @Success 204
// @Failure 401
// @Failure 403
// @Failure 404
// @Router /articles/{slug} [delete]
func (ac *ArticleController) Delete(c *fiber.Ctx) error {
	if err := ac.articles.Delete(c.UserContext(), viewerID(c), localArticle(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Favorite handles POST /articles/:slug/favorite
// @Summary Favorite an article
// @Tags articles
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Slug"
// @Success 200 {object} object{article=models.ArticleView}
// @Failure 401
// @Failure 404
// @Router /articles/{slug}/favorite [post]
func (ac *ArticleController) Favorite(c *fiber.Ctx) error {
	view, err := ac.articles.Favorite(c.UserContext(), viewerID(c), localArticle(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"article": view})
}

// Unfavorite handles DELETE /articles/:slug/favorite
// @Summary Unfavorite an article
// @Tags articles
// @Produce json
// @Security TokenAuth
// @Param slug path string true "Slug"
// @Success 200 {object} object{article=models.ArticleView}
// @Failure 401
// @Failure 404
// @Router /articles/{slug}/favorite [delete]
func (ac *ArticleController) Unfavorite(c *fiber.Ctx) error {
	view, err := ac.articles.Unfavorite(c.UserContext(), viewerID(c), localArticle(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"article": view})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
