package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
)

// VoteHandler handles HTTP requests related to votes
type VoteHandler struct {
	voteRepository    repositories.VoteRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(voteRepo repositories.VoteRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *VoteHandler {
	return &VoteHandler{
		voteRepository:    voteRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// RegisterVoteRoutes registers vote-related routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.POST("/posts/:id/vote", h.VotePost)
	g.POST("/comments/:id/vote", h.VoteComment)
}

// VotePost casts or replaces the caller's vote on a post
func (h *VoteHandler) VotePost(c echo.Context) error {
	_, err := h.postRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to vote on post.")
	}

	return h.castVote(c, models.TargetTypePost, c.Param("id"), "Failed to vote on post.")
}

// VoteComment casts or replaces the caller's vote on a comment
func (h *VoteHandler) VoteComment(c echo.Context) error {
	_, err := h.commentRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to vote on comment.")
	}

	return h.castVote(c, models.TargetTypeComment, c.Param("id"), "Failed to vote on comment.")
}

func (h *VoteHandler) castVote(c echo.Context, targetType, targetID, failureMsg string) error {
	var req models.CastVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vote := &models.Vote{
		UserID:     currentUserID(c),
		TargetType: targetType,
		TargetID:   targetID,
		VoteType:   req.VoteType,
	}

	if err := h.voteRepository.Upsert(c.Request().Context(), vote); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, failureMsg)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
