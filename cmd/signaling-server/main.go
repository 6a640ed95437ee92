package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/skillswap/signaling-server/config"
	"github.com/skillswap/signaling-server/internal/handlers"
	"github.com/skillswap/signaling-server/internal/middleware"
	"github.com/skillswap/signaling-server/internal/redis"
	"github.com/skillswap/signaling-server/internal/rooms"
	"github.com/skillswap/signaling-server/internal/signaling"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	store, err := redis.NewStore(cfg.Redis)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer store.Close()
	logger.Info("redis connection established")

	// The coordinator owns the registry; nothing else touches it.
	registry := rooms.NewRegistry()
	coordinator := signaling.NewCoordinator(registry, store.Presence(cfg.PresenceTTL), logger)
	go coordinator.Run()

	sessions := handlers.NewSessionAPI(store, cfg.SessionTTL, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/auth/login", handlers.Login(cfg.JWTSecret))
		apiGroup.POST("/sessions", middleware.JWTAuth(cfg.JWTSecret), sessions.Create)
		apiGroup.GET("/sessions/:sessionId", sessions.Get)
		apiGroup.DELETE("/sessions/:sessionId", middleware.JWTAuth(cfg.JWTSecret), sessions.Delete)
	}

	// Rooms are entered via join-session events after the upgrade, so the
	// path carries no session id.
	router.GET("/ws/signal", handlers.HandleSignaling(coordinator, logger))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("signaling server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Connected clients rejoin on reconnect; room state is not preserved.
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown did not complete cleanly", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	if environment == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
