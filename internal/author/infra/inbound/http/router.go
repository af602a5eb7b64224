package http

import "github.com/gin-gonic/gin"

// RegisterAuthorRoutes monta las rutas del módulo. Las mutaciones van
// detrás del middleware de auth que reciba el grupo.
func RegisterAuthorRoutes(r gin.IRoutes, handler *AuthorHandler) {
	r.POST("/authors", handler.CreateAuthor)
	r.GET("/authors", handler.ListAuthors)
	r.GET("/authors/default", handler.GetDefaultAuthor)
	r.PUT("/authors/default", handler.SetDefaultAuthor)
	r.GET("/authors/:id", handler.GetAuthor)
	r.PUT("/authors/:id", handler.UpdateAuthor)
	r.DELETE("/authors/:id", handler.DeleteAuthor)
}
