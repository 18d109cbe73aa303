package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openboard/board-api/internal/api/metrics"
	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

// ArticleHandler handles article CRUD endpoints.
type ArticleHandler struct {
	articleService ports.ArticleService
}

func NewArticleHandler(articleService ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

type articleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type articleResponse struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newArticleResponse(a *domain.Article, authorEmail string) articleResponse {
	return articleResponse{ID: a.ID, Email: authorEmail, Title: a.Title, Content: a.Content}
}

// Create adds a new article owned by the caller.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      articleRequest  true  "Article fields"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.articleService.Create(c.Request().Context(), principal, ports.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, newArticleResponse(article, principal.Email))
}

// Update rewrites the title and content of an article owned by the caller.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Article id"
// @Param        body  body      articleRequest  true  "Article fields"
// @Success      200   {object}  articleResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.articleService.Update(c.Request().Context(), principal, articleID, ports.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newArticleResponse(article, principal.Email))
}

// Delete removes an article owned by the caller, with its comments.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  int  true  "Article id"
// @Success      200
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.articleService.Delete(c.Request().Context(), principal, articleID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" path parameter")
	}
	return id, nil
}
