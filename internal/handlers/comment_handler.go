package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{commentRepository: commentRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.ListComments)
}

// CreateComment appends a comment to a post, optionally as a reply to an
// existing comment on the same post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := currentUserID(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.Comment{
		PostID:          postID,
		AuthorID:        userID,
		ParentCommentID: req.ParentCommentID,
		Body:            req.Body,
	}

	if err := h.commentRepository.Create(c.Request().Context(), comment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPostNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
		case errors.Is(err, repositories.ErrParentCommentNotFound),
			errors.Is(err, repositories.ErrParentCommentMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to add comment.")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"comment": comment})
}

// ListComments returns all comments for a post in a flat chronological list
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.commentRepository.ListByPostID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch comments.")
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"comments": comments})
}
