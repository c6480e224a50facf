package handlers

import (
	"errors"
	"net/http"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	savedRepository repositories.SavedPostRepository
	postRepository  repositories.PostRepository
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedRepo repositories.SavedPostRepository, postRepo repositories.PostRepository) *SavedPostHandler {
	return &SavedPostHandler{
		savedRepository: savedRepo,
		postRepository:  postRepo,
	}
}

// RegisterSavedPostRoutes registers save routes under the posts group
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/:id/save", h.Save)
}

// Save toggles whether the caller has a post saved. Saving is private
// and never notifies anyone.
func (h *SavedPostHandler) Save(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	postID := c.Param("id")
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	existing, err := h.savedRepository.GetSavedPost(postID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if existing != nil {
		if err := h.savedRepository.DeleteSavedPost(postID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Post unsaved",
		})
	}

	saved := &models.SavedPost{
		PostID: postID,
		UserID: userID,
	}
	if err := h.savedRepository.CreateSavedPost(saved); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    saved,
	})
}
