package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/discovery"
	"github.com/vibewham/vibe-wham/backend/internal/geo"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	engine          *discovery.Engine
	discoverTimeout time.Duration
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, engine *discovery.Engine, discoverTimeout time.Duration) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		engine:          engine,
		discoverTimeout: discoverTimeout,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.DiscoverPosts)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost creates a new post anchored to the caller-supplied location
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := currentUserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	point, err := geo.ParseEWKT(req.Location)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		AuthorID:     userID,
		Title:        req.Title,
		Body:         req.Body,
		Latitude:     point.Latitude,
		Longitude:    point.Longitude,
		ReachRadiusM: req.ReachRadiusM,
	}

	if err := h.postRepository.Create(c.Request().Context(), post); err != nil {
		if errors.Is(err, repositories.ErrInvalidReachRadius) || errors.Is(err, repositories.ErrInvalidCoordinates) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post.")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"post": post})
}

// DiscoverPosts returns the page of posts mutually visible to the viewer,
// ranked by distance
func (h *PostHandler) DiscoverPosts(c echo.Context) error {
	latitude, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "latitude must be a number")
	}
	longitude, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "longitude must be a number")
	}
	radiusM, err := strconv.Atoi(c.QueryParam("radius_m"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "radius_m must be an integer")
	}

	page := discovery.DefaultPage
	if s := c.QueryParam("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be an integer")
		}
	}
	limit := discovery.DefaultLimit
	if s := c.QueryParam("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}

	viewer, err := geo.NewPoint(latitude, longitude)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Bound long-running scans; client disconnects cancel the request
	// context and abort the query with it.
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.discoverTimeout)
	defer cancel()

	posts, err := h.engine.Discover(ctx, viewer, radiusM, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, discovery.ErrInvalidRadius),
			errors.Is(err, discovery.ErrInvalidPage),
			errors.Is(err, discovery.ErrInvalidLimit):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return echo.NewHTTPError(http.StatusGatewayTimeout, "Discovery query timed out, please retry.")
		case errors.Is(err, context.Canceled):
			return err
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to discover posts.")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get post.")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"post": post})
}
