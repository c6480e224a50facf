package handlers

import (
	"errors"
	"net/http"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ShareHandler handles post share HTTP requests
type ShareHandler struct {
	shareRepository repositories.ShareRepository
	postRepository  repositories.PostRepository
	engine          *services.NotificationEngine
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareRepo repositories.ShareRepository, postRepo repositories.PostRepository, engine *services.NotificationEngine) *ShareHandler {
	return &ShareHandler{
		shareRepository: shareRepo,
		postRepository:  postRepo,
		engine:          engine,
	}
}

// RegisterShareRoutes registers share routes under the posts group
func (h *ShareHandler) RegisterShareRoutes(g *echo.Group) {
	g.POST("/:id/share", h.Share)
}

// Share toggles the caller's share of a post. Only a fresh share
// notifies the post author; un-sharing never retracts the earlier
// notification.
func (h *ShareHandler) Share(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	existing, err := h.shareRepository.GetShare(postID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existing != nil {
		if err := h.shareRepository.DeleteShare(postID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.postRepository.AdjustSharesCount(c.Request().Context(), postID, -1); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Share removed",
		})
	}

	share := &models.Share{
		PostID: postID,
		UserID: userID,
	}
	if err := h.shareRepository.CreateShare(share); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.AdjustSharesCount(c.Request().Context(), postID, 1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != userID {
		if _, err := h.engine.Notify(post.AuthorID, userID, models.NotificationTypeShare, postID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    share,
	})
}
