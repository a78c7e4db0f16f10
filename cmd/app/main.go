package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minesweeper/internal/config"
	"minesweeper/internal/db"
	httpServer "minesweeper/internal/http"
	"minesweeper/internal/http/handlers"
	"minesweeper/internal/http/middleware"
	"minesweeper/internal/logger"
	"minesweeper/internal/repository"
	"minesweeper/internal/service"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	if dbPool != nil {
		defer dbPool.Close()
	}

	// interfaces stay nil without a database so history is reported as disabled
	var (
		recorder service.HistoryRecorder
		reader   handlers.HistoryReader
	)
	if dbPool != nil {
		repo := repository.NewGameHistoryRepository(dbPool)
		recorder, reader = repo, repo
	}

	sessions := service.NewSessionService(recorder, service.SessionConfig{
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
		TTL:       cfg.SessionTTL,
	})
	defer sessions.Close()

	if cfg.RedisAddr != "" {
		middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}

	r := gin.Default()

	// CORS for a frontend served from a different origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	hub := httpServer.RegisterRoutes(r, httpServer.Deps{
		Config:   cfg,
		Sessions: sessions,
		History:  reader,
		DB:       dbPool,
		Version:  version,
	})
	defer hub.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version, "history", dbPool != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
