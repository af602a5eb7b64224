package http

import "github.com/gin-gonic/gin"

// RegisterDraftRoutes monta las rutas del módulo.
func RegisterDraftRoutes(r gin.IRoutes, handler *DraftHandler) {
	r.POST("/drafts", handler.CreateDraft)
	r.GET("/drafts", handler.ListDrafts)
	r.GET("/drafts/:id", handler.GetDraft)
	r.PUT("/drafts/:id", handler.UpdateDraft)
	r.DELETE("/drafts/:id", handler.DeleteDraft)
	r.POST("/drafts/:id/publish", handler.PublishDraft)
}
