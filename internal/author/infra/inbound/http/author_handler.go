package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/hexanews/internal/author/application"
	"github.com/davicafu/hexanews/internal/author/domain"
	"github.com/davicafu/hexanews/internal/shared/infra/auth"
)

// AuthorHandler encapsula los endpoints HTTP relacionados con Author.
type AuthorHandler struct {
	service *application.AuthorService
}

func NewAuthorHandler(service *application.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// ---------------- Handlers ----------------

// CreateAuthor endpoint POST /authors
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.service.CreateAuthor(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAuthorName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, author)
}

// GetAuthor endpoint GET /authors/:id
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	author, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, author)
}

// ListAuthors endpoint GET /authors
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
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

	authors, err := h.service.ListAuthors(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, authors)
}

// UpdateAuthor endpoint PUT /authors/:id
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author, err := h.service.UpdateAuthor(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
		case errors.Is(err, domain.ErrInvalidAuthorName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, author)
}

// DeleteAuthor endpoint DELETE /authors/:id
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}

	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDefaultAuthor endpoint GET /authors/default
// El usuario sale del subject del token.
func (h *AuthorHandler) GetDefaultAuthor(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	author, err := h.service.DefaultAuthor(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if author == nil {
		c.JSON(http.StatusOK, gin.H{"author": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"author": author})
}

// SetDefaultAuthor endpoint PUT /authors/default
func (h *AuthorHandler) SetDefaultAuthor(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	var req struct {
		AuthorID *string `json:"author_id"` // null limpia la preferencia
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var authorID *uuid.UUID
	if req.AuthorID != nil {
		parsed, err := uuid.Parse(*req.AuthorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		authorID = &parsed
	}

	if err := h.service.SetDefaultAuthor(c.Request.Context(), claims.Subject, authorID); err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
