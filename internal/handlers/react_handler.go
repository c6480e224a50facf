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

// ReactHandler handles post reaction HTTP requests
type ReactHandler struct {
	reactRepository repositories.ReactRepository
	postRepository  repositories.PostRepository
	engine          *services.NotificationEngine
}

// NewReactHandler creates a new ReactHandler
func NewReactHandler(reactRepo repositories.ReactRepository, postRepo repositories.PostRepository, engine *services.NotificationEngine) *ReactHandler {
	return &ReactHandler{
		reactRepository: reactRepo,
		postRepository:  postRepo,
		engine:          engine,
	}
}

// RegisterReactRoutes registers reaction routes
func (h *ReactHandler) RegisterReactRoutes(g *echo.Group) {
	g.POST("/:id/react", h.React)
	g.GET("/:id/reacts", h.GetReacts)
}

// React toggles the caller's reaction on a post. Reacting again with
// the same type removes it; a different type replaces it in place. Only
// a fresh reaction notifies the post author, and only when the author
// is someone else.
func (h *ReactHandler) React(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	existing, err := h.reactRepository.GetReact(postID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	switch {
	case existing == nil || errors.Is(err, gorm.ErrRecordNotFound):
		react := &models.React{
			PostID: postID,
			UserID: userID,
			Type:   req.Type,
		}
		if err := h.reactRepository.CreateReact(react); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.postRepository.AdjustReactsCount(c.Request().Context(), postID, 1); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if post.AuthorID != userID {
			if _, err := h.engine.Notify(post.AuthorID, userID, models.NotificationTypeLike, postID); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"data":    react,
		})

	case existing.Type == req.Type:
		if err := h.reactRepository.DeleteReact(postID, userID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if err := h.postRepository.AdjustReactsCount(c.Request().Context(), postID, -1); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Reaction removed",
		})

	default:
		existing.Type = req.Type
		if err := h.reactRepository.UpdateReact(existing); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    existing,
		})
	}
}

// GetReacts returns all reactions on a post
func (h *ReactHandler) GetReacts(c echo.Context) error {
	postID := c.Param("id")

	reacts, err := h.reactRepository.GetReactsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.reactRepository.GetReactsCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    reacts,
		"count":   count,
	})
}
