package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 20

// PostHandler handles post HTTP requests
type PostHandler struct {
	postRepository  repositories.PostRepository
	savedRepository repositories.SavedPostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, savedRepo repositories.SavedPostRepository) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		savedRepository: savedRepo,
	}
}

// RegisterPostRoutes registers post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("", h.CreatePost)
	g.GET("", h.GetAllPosts)
	g.GET("/saved", h.GetSavedPosts)
	g.GET("/user/:id", h.GetPostsByUser)
	g.GET("/:id", h.GetPost)
	g.PUT("/:id", h.UpdatePost)
	g.DELETE("/:id", h.DeletePost)
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID:  userID,
		PostType:  req.PostType,
		Title:     req.Title,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
		Tags:      req.Tags,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    post,
	})
}

// GetAllPosts returns a page of all posts, newest first
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	skip, limit := paginationParams(c)

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    posts,
	})
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    post,
	})
}

// GetPostsByUser returns a page of posts authored by the given user
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	skip, limit := paginationParams(c)

	posts, err := h.postRepository.GetPostsByAuthorID(c.Request().Context(), uint(authorID), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    posts,
	})
}

// GetSavedPosts returns the posts the caller has saved
func (h *PostHandler) GetSavedPosts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	saved, err := h.savedRepository.GetSavedPostsByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	posts := make([]models.Post, 0, len(saved))
	for _, s := range saved {
		post, err := h.postRepository.GetPostByID(c.Request().Context(), s.PostID)
		if err != nil {
			if errors.Is(err, repositories.ErrPostNotFound) {
				// Saved reference to a post deleted since; skip it.
				continue
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		posts = append(posts, *post)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    posts,
	})
}

// UpdatePost updates a post owned by the caller
func (h *PostHandler) UpdatePost(c echo.Context) error {
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
	if post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own posts")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	post.UpdatedAt = time.Now()

	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    post,
	})
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
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
	if post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post deleted successfully",
	})
}

func paginationParams(c echo.Context) (skip, limit int64) {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}
	return (page - 1) * limit, limit
}
