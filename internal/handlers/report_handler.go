package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
)

// ReportHandler handles HTTP requests related to abuse reports
type ReportHandler struct {
	reportRepository  repositories.ReportRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *ReportHandler {
	return &ReportHandler{
		reportRepository:  reportRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/posts/:id/report", h.ReportPost)
	g.POST("/comments/:id/report", h.ReportComment)
}

// ReportPost files a report against a post
func (h *ReportHandler) ReportPost(c echo.Context) error {
	_, err := h.postRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to report post.")
	}

	return h.fileReport(c, models.TargetTypePost, c.Param("id"), "Failed to report post.")
}

// ReportComment files a report against a comment
func (h *ReportHandler) ReportComment(c echo.Context) error {
	_, err := h.commentRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to report comment.")
	}

	return h.fileReport(c, models.TargetTypeComment, c.Param("id"), "Failed to report comment.")
}

// fileReport appends the report unconditionally; repeat reports by the same
// reporter are kept as separate rows. The target-existence check above runs
// in Postgres while the append lands in MongoDB, so the two are not atomic: a
// report may reference a target deleted between the check and the insert.
// Targets are never deleted through this service, so the race is inert.
func (h *ReportHandler) fileReport(c echo.Context, targetType, targetID, failureMsg string) error {
	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report := &models.Report{
		ReporterID: currentUserID(c),
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     req.Reason,
	}

	if err := h.reportRepository.Create(c.Request().Context(), report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, failureMsg)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
