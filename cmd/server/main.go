package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"essay-grader-service/internal/adapters/primary/http/handlers"
	"essay-grader-service/internal/adapters/primary/http/middleware"
	"essay-grader-service/internal/app"
	"essay-grader-service/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

const filesPrefix = "/files"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app.InitLogger(&cfg.Logger)

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	defer a.Close()

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(a.Rubrics, a.Assessments, a.Grades, a.Essays, a.Transcription, handlers.Options{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		FilesPrefix:    filesPrefix,
	})

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	router.MaxMultipartMemory = 8 << 20

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	// Essay images and transcripts
	router.Static(filesPrefix, a.Folders.Root())

	// Health check with store ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := a.Stores.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}
