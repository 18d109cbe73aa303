package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openboard/board-api/internal/api/metrics"
	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
)

// CommentHandler handles comment CRUD endpoints nested under articles.
type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentResponse struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

func newCommentResponse(cm *domain.Comment, authorEmail string) commentResponse {
	return commentResponse{ID: cm.ID, Email: authorEmail, Content: cm.Content}
}

// Create adds a comment to an article.
//
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Article id"
// @Param        body  body      commentRequest  true  "Comment fields"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), principal, articleID, req.Content)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, newCommentResponse(comment, principal.Email))
}

// Update rewrites a comment owned by the caller.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Article id"
// @Param        cid   path      int             true  "Comment id"
// @Param        body  body      commentRequest  true  "Comment fields"
// @Success      200   {object}  commentResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/{id}/comments/{cid} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Update(c.Request().Context(), principal, articleID, commentID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment, principal.Email))
}

// Delete removes a comment owned by the caller.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id   path  int  true  "Article id"
// @Param        cid  path  int  true  "Comment id"
// @Success      200
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id}/comments/{cid} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "cid")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), principal, articleID, commentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
