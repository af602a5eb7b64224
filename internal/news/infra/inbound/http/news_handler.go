package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/hexanews/internal/news/application"
	"github.com/davicafu/hexanews/internal/news/domain"
)

// NewsHandler encapsula los endpoints HTTP relacionados con NewsArticle.
type NewsHandler struct {
	service *application.NewsService
}

func NewNewsHandler(service *application.NewsService) *NewsHandler {
	return &NewsHandler{service: service}
}

// ---------------- Handlers ----------------

// ListNews endpoint GET /news
func (h *NewsHandler) ListNews(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = v
		}
	}
	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil {
			offset = v
		}
	}

	articles, err := h.service.ListNews(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// GetNews endpoint GET /news/:id
func (h *NewsHandler) GetNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}

	article, err := h.service.GetNews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNewsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

// RevokeNews endpoint POST /news/:id/revoke
func (h *NewsHandler) RevokeNews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news id"})
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.service.RevokeNews(c.Request.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNewsNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "news article not found"})
		case errors.Is(err, domain.ErrNewsAlreadyRevoked):
			c.JSON(http.StatusConflict, gin.H{"error": "news article already revoked"})
		case errors.Is(err, domain.ErrEmptyRevokeReason):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, article)
}
