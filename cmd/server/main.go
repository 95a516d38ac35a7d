package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"news-sentiment-service/internal/adapters/primary/http/handlers"
	"news-sentiment-service/internal/adapters/primary/http/middleware"
	"news-sentiment-service/internal/adapters/secondary/metrics"
	"news-sentiment-service/internal/adapters/secondary/watcher"
	"news-sentiment-service/internal/app"
	"news-sentiment-service/internal/config"
	"news-sentiment-service/internal/core/domain"
	output "news-sentiment-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	prom := metrics.NewPrometheus()

	a, err := app.New(ctx, cfg, prom)
	if err != nil {
		log.Fatalf("init app: %v", err)
	}
	defer a.Close()

	// The server starts even when the first load fails; /healthz reports 503
	// until a reload succeeds.
	if err := a.Datasets.Reload(ctx); err != nil {
		log.WithError(err).Warn("initial dataset load failed")
	}

	// Dataset Watcher (Optional - based on config)
	var dw *watcher.DatasetWatcher
	if cfg.Source.Watch {
		ws, ok := a.Source.(output.WatchableSource)
		if !ok {
			log.WithError(domain.ErrSourceNotWatchable).Warn("SOURCE_WATCH ignored")
		} else if dw, err = watcher.New(ws.WatchPath(), a.Datasets, cfg.Source.WatchDebounce); err != nil {
			log.Warnf("dataset watcher init failed (continuing without reload on change): %v", err)
			dw = nil
		} else {
			go dw.Run(ctx)
		}
	} else {
		log.Info("dataset watching disabled")
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(a.Datasets, a.Search, a.Insights, a.Export)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Metrics(prom), gin.Recovery())

	api := router.Group("/api/v1/news-search")
	h.RegisterRoutes(api)

	// Health check reports whether a dataset is being served
	router.GET("/healthz", func(c *gin.Context) {
		info, err := a.Datasets.Info()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": info.Rows})
	})
	router.GET("/metrics", gin.WrapH(prom.Handler()))

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
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

	stop()
	if dw != nil {
		<-dw.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
