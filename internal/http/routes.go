package http

import (
	"context"
	"time"

	"minesweeper/internal/config"
	"minesweeper/internal/http/handlers"
	"minesweeper/internal/http/middleware"
	"minesweeper/internal/service"
	"minesweeper/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Config   *config.Config
	Sessions *service.SessionService
	History  handlers.HistoryReader // nil when DATABASE_URL is unset
	DB       *pgxpool.Pool          // nil when DATABASE_URL is unset
	Version  string
}

// apiRateLimit caps unauthenticated requests per IP
const (
	apiRateLimit  = 120
	apiRateWindow = time.Minute
)

// RegisterRoutes wires every endpoint. The returned hub owns a cleanup
// goroutine; Close it on shutdown.
func RegisterRoutes(r *gin.Engine, d Deps) *ws.Hub {
	cfg := d.Config

	checks := map[string]handlers.Pinger{}
	if d.DB != nil {
		checks["database"] = d.DB.Ping
	}
	if middleware.RedisEnabled() {
		checks["redis"] = func(ctx context.Context) error { return middleware.RedisPing(ctx) }
	}
	healthHandler := handlers.NewHealthHandler(d.Version, d.Sessions.ActiveCount, checks)

	hub := ws.NewHub()
	hub.StartCleanup(d.Sessions, time.Minute)
	d.Sessions.SetNotifier(hub)

	h := handlers.NewHandler(d.Sessions, d.History, hub, handlers.HandlerConfig{
		DefaultWidth:  cfg.DefaultWidth,
		DefaultHeight: cfg.DefaultHeight,
		DefaultMines:  cfg.DefaultMines,
		TokenTTL:      cfg.SessionTTL,
	})

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, cfg.ClickRateLimit, cfg.ClickRateWindow)

	// WebSocket shell: clicks in, board state and timer ticks out
	r.GET("/ws", ws.HandleWS(d.Sessions, hub, cfg.AllowedOrigin))
	return hub
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, clickRateLimit int, clickRateWindow time.Duration) {
	api.POST("/games", h.CreateGame)
	api.GET("/games/presets", h.Presets)

	clickRL := middleware.ClickRateLimit(clickRateLimit, clickRateWindow)

	games := api.Group("/games")
	games.Use(middleware.SessionAuth())
	{
		games.GET("/state", h.GameState)
		games.POST("/reveal", clickRL, h.Reveal)
		games.POST("/flag", clickRL, h.Flag)
		games.POST("/restart", clickRL, h.Restart)
		games.DELETE("", h.DeleteGame)
		games.GET("/history", h.MyHistory)
	}

	api.GET("/history", h.GetHistory)
	api.GET("/stats", h.GetStats)
}
