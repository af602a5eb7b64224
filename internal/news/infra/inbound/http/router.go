package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexanews/internal/shared/infra/auth"
)

// PermissionRevokeNews habilita retirar noticias publicadas.
const PermissionRevokeNews = "news:revoke"

// RegisterNewsRoutes monta las rutas del módulo. List y Get son públicas;
// revoke debe montarse en el grupo autenticado y exige permiso editorial.
func RegisterNewsRoutes(public, protected gin.IRoutes, handler *NewsHandler) {
	public.GET("/news", handler.ListNews)
	public.GET("/news/:id", handler.GetNews)
	protected.POST("/news/:id/revoke", auth.RequirePermission(PermissionRevokeNews), handler.RevokeNews)
}
