package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/api"
	"github.com/JusFlow/datajud-service/internal/config"
	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/shared"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/utils"
	"github.com/JusFlow/datajud-service/internal/watcher"
)

func main() {
	// .env is optional; containerized deployments set real env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Environment); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = utils.Zlog.Sync()
	}()

	utils.Zlog.Info("Configuration loaded",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port))

	// Store selection: Postgres when configured, in-memory otherwise.
	var store storage.Store
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		pgStore, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL, 10, cfg.HistoryLimit)
		cancel()
		if err != nil {
			utils.Zlog.Fatal("Failed to connect to Postgres", zap.Error(err))
		}
		store = pgStore
	} else {
		utils.Zlog.Info("DATABASE_URL not set, acervo lives in memory only")
		store = storage.NewMemoryStore(cfg.HistoryLimit)
	}
	defer store.Close()

	client := datajud.NewClient(cfg.DataJudBaseURL, cfg.DataJudAPIKey, cfg.DataJudTimeout)
	if client.Mode() == datajud.ModoDemonstracao {
		utils.Zlog.Warn("DATAJUD_API_KEY not set, running in demo mode with fixture data")
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(shared.RequestID())
	router.Use(shared.Recovery())
	router.Use(shared.AccessLogger())
	router.Use(corsMiddleware())
	router.Use(shared.RateLimit(100, time.Minute))

	api.RegisterRoutes(router, client, store, cfg)

	var watch *watcher.Watcher
	if cfg.WatcherEnabled {
		watch = watcher.New(client, store, cfg.WatcherInterval)
		watch.Start()
	}

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 60 * time.Second,
		// Large bulk lookups pace themselves between batches and can run
		// for minutes before the response starts.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if watch != nil {
		watch.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	utils.Zlog.Info("Server exited gracefully")
}

// corsMiddleware handles CORS headers. Download metadata headers are exposed
// so browser clients can read the suggested filename and export tallies.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition, X-Registros-Exportados, X-Registros-Ignorados")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
