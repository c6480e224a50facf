package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	engine           *services.NotificationEngine
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, engine *services.NotificationEngine) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		engine:           engine,
	}
}

// RegisterFollowRoutes registers follow routes under the users group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/:id/follow", h.Follow)
	g.DELETE("/:id/follow", h.Unfollow)
	g.GET("/:id/followers-count", h.FollowersCount)
}

// Follow makes the caller follow another user and notifies that user
func (h *FollowHandler) Follow(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	followingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if uint(followingID) == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(uint(followingID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	already, err := h.followRepository.IsFollowing(userID, uint(followingID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if already {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{
		FollowerID:  userID,
		FollowingID: uint(followingID),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	follower, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	message := fmt.Sprintf("%s started following you", follower.Username)
	if _, err := h.engine.NotifyCustom(uint(followingID), userID, message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    follow,
	})
}

// Unfollow makes the caller stop following another user. The earlier
// follow notification is not retracted.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	followingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	following, err := h.followRepository.IsFollowing(userID, uint(followingID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !following {
		return echo.NewHTTPError(http.StatusNotFound, "Follow not found")
	}

	if err := h.followRepository.DeleteFollow(userID, uint(followingID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Unfollowed successfully",
	})
}

// FollowersCount returns how many users follow the given user
func (h *FollowHandler) FollowersCount(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	count, err := h.followRepository.GetFollowersCount(uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   count,
	})
}
