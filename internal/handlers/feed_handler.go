package handlers

import (
	"net/http"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the posts of users the caller follows
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		followRepository: followRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("", h.GetFeed)
}

// GetFeed returns a page of posts from followed users, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(followingIDs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    []models.Post{},
		})
	}

	skip, limit := paginationParams(c)
	posts, err := h.postRepository.GetPostsByAuthorIDs(c.Request().Context(), followingIDs, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    posts,
	})
}
