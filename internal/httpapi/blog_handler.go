package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/service/blog"
)

type BlogHandler struct {
	blog *blog.Service
}

func NewBlogHandler(blogService *blog.Service) *BlogHandler {
	return &BlogHandler{blog: blogService}
}

// Newest serves the public feed, paginated by the zero-based "page" query.
func (h *BlogHandler) Newest(c *gin.Context) {
	page := 0
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		page = parsed
	}

	result, err := h.blog.Newest(page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	detail, err := h.blog.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *BlogHandler) CreateComment(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	var data blog.CommentFormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	commentID, err := h.blog.CreateComment(identity, id, data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentID)
}
