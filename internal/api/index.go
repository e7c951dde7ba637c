package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JusFlow/datajud-service/internal/api/acervo"
	"github.com/JusFlow/datajud-service/internal/api/consulta"
	"github.com/JusFlow/datajud-service/internal/api/export"
	"github.com/JusFlow/datajud-service/internal/config"
	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/tribunais"
)

// RegisterRoutes mounts the health probe and every feature router under
// /api/v1. The consulta service is shared: export reuses its bulk
// orchestrator and acervo its single lookup.
func RegisterRoutes(router *gin.Engine, client *datajud.Client, store storage.Store, cfg *config.Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   cfg.ServiceName,
			"mode":      string(client.Mode()),
			"timestamp": time.Now().UTC(),
		})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/tribunais", func(c *gin.Context) {
		lista := tribunais.Lista()
		sort.Strings(lista)
		c.JSON(http.StatusOK, gin.H{
			"total":     len(lista),
			"tribunais": lista,
		})
	})

	consultas := consulta.NewService(client, store, cfg)
	consulta.RegisterRoutes(v1, consultas)
	export.RegisterRoutes(v1, export.NewService(consultas))
	acervo.RegisterRoutes(v1, acervo.NewService(consultas, store))
}
