package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/service/draft"
)

type DraftHandler struct {
	drafts *draft.Service
}

func NewDraftHandler(drafts *draft.Service) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

func (h *DraftHandler) List(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	drafts, err := h.drafts.List(identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, drafts)
}

func (h *DraftHandler) Get(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	detail, err := h.drafts.GetByID(identity, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create returns the new post's numeric id as the response body.
func (h *DraftHandler) Create(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var data draft.FormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.drafts.Create(identity, data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, id)
}

func (h *DraftHandler) Update(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	var data draft.FormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.drafts.Update(identity, id, data); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *DraftHandler) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.drafts.Delete(identity, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// postID parses the :id path segment. A non-numeric id can never reference a
// post, so it reads as NotFound.
func postID(c *gin.Context) (model.PostID, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found: " + c.Param("id")})
		return 0, false
	}
	return model.PostID(id), true
}
