package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/hexanews/internal/draft/application"
	"github.com/davicafu/hexanews/internal/draft/domain"
	shared "github.com/davicafu/hexanews/internal/shared/domain"
	"github.com/davicafu/hexanews/internal/shared/infra/auth"
)

// DraftHandler encapsula los endpoints HTTP relacionados con Draft.
type DraftHandler struct {
	service *application.DraftService
}

func NewDraftHandler(service *application.DraftService) *DraftHandler {
	return &DraftHandler{service: service}
}

// ---------------- Handlers ----------------

// CreateDraft endpoint POST /drafts
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	var req struct {
		AuthorID      string  `json:"author_id" binding:"required"`
		NewsArticleID *string `json:"news_article_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	var newsArticleID *uuid.UUID
	if req.NewsArticleID != nil {
		parsed, err := uuid.Parse(*req.NewsArticleID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid news article id"})
			return
		}
		newsArticleID = &parsed
	}

	draft, err := h.service.CreateDraft(c.Request.Context(), authorID, claims.Subject, newsArticleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// GetDraft endpoint GET /drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	draft, err := h.service.GetDraft(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// ListDrafts endpoint GET /drafts?author_id=...
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	authorIDStr := c.Query("author_id")
	if authorIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author_id query param is required"})
		return
	}
	authorID, err := uuid.Parse(authorIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	drafts, err := h.service.ListDraftsByAuthor(c.Request.Context(), authorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, drafts)
}

// UpdateDraft endpoint PUT /drafts/:id
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	var req struct {
		Headline string `json:"headline"`
		Text     string `json:"text"`
		Image    struct {
			URL         string `json:"url"`
			Description string `json:"description"`
			Author      string `json:"author"`
		} `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.service.UpdateDraft(c.Request.Context(), id, req.Headline, req.Text, shared.Image{
		URL:         req.Image.URL,
		Description: req.Image.Description,
		Author:      req.Image.Author,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		case errors.Is(err, domain.ErrDraftAlreadyPublished):
			c.JSON(http.StatusConflict, gin.H{"error": "draft already published"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft endpoint DELETE /drafts/:id?force=true
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}
	force := c.Query("force") == "true"

	if err := h.service.DeleteDraft(c.Request.Context(), id, force); err != nil {
		switch {
		case errors.Is(err, domain.ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		case errors.Is(err, domain.ErrDraftAlreadyPublished):
			c.JSON(http.StatusConflict, gin.H{"error": "draft already published, use force=true"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// PublishDraft endpoint POST /drafts/:id/publish
func (h *DraftHandler) PublishDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	draft, err := h.service.PublishDraft(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDraftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		case errors.Is(err, domain.ErrDraftAlreadyPublished):
			c.JSON(http.StatusConflict, gin.H{"error": "draft already published"})
		case errors.Is(err, domain.ErrEmptyHeadline),
			errors.Is(err, domain.ErrEmptyText),
			errors.Is(err, domain.ErrMissingImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, draft)
}
