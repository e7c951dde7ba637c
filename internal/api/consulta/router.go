package consulta

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the lookup endpoints into the router group. The
// service is built by the caller so other features can share it.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	router.POST("/consulta", controller.Consultar)
	router.POST("/consulta/pesquisa", controller.Pesquisar)
	router.POST("/consulta/lote", controller.ConsultarLote)
}
