package acervo

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the acervo endpoints into the router group.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	grupo := router.Group("/acervo")
	grupo.GET("/historico", controller.Historico)

	grupo.GET("/favoritos", controller.ListarFavoritos)
	grupo.POST("/favoritos", controller.AdicionarFavorito)
	grupo.DELETE("/favoritos/:tribunal/:numero", controller.RemoverFavorito)

	grupo.GET("/acompanhamentos", controller.ListarAcompanhamentos)
	grupo.POST("/acompanhamentos", controller.Acompanhar)
	grupo.DELETE("/acompanhamentos/:tribunal/:numero", controller.PararAcompanhamento)
}
