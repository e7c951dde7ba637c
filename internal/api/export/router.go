package export

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the export endpoint into the router group.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	controller := NewController(service)

	router.POST("/export", controller.Exportar)
}
