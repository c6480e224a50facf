package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	engine            *services.NotificationEngine
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, engine *services.NotificationEngine) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		engine:            engine,
	}
}

// RegisterCommentRoutes registers comment routes under the posts group
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:id/comments", h.CreateComment)
	g.GET("/:id/comments", h.GetComments)
	g.PUT("/:id/comments/:commentId", h.UpdateComment)
	g.DELETE("/:id/comments/:commentId", h.DeleteComment)
}

// CreateComment adds a comment to a post and notifies the post author
// unless the commenter is the author.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	var req models.CreateCommentRequest
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

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.AdjustCommentsCount(c.Request().Context(), postID, 1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != userID {
		if _, err := h.engine.Notify(post.AuthorID, userID, models.NotificationTypeComment, postID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    comment,
	})
}

// GetComments returns all comments on a post, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.commentRepository.GetCommentsByPostID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    comments,
	})
}

// UpdateComment edits a comment owned by the caller. Edits never
// produce a notification.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own comments")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    comment,
	})
}

// DeleteComment removes a comment owned by the caller
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.postRepository.AdjustCommentsCount(c.Request().Context(), comment.PostID, -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Comment deleted successfully",
	})
}
