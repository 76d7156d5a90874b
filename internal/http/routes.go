package http

import (
	"rps_arena/internal/config"
	"rps_arena/internal/http/handlers"
	"rps_arena/internal/http/middleware"
	"rps_arena/internal/service"
	"rps_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// Deps are the collaborators the router hands out to handlers.
type Deps struct {
	Config  *config.Config
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Engine  *service.MatchEngine
	Hub     *ws.Hub
	Redis   *redis.Client // nil falls back to the in-process rate limiter
}

// NewRouter builds the gin engine with the global middleware chain.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.CORS(d.Config.AllowedOrigin))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	h := d.Handler

	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimit := middleware.SimpleRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)
	if d.Redis != nil {
		rateLimit = middleware.RedisRateLimit(d.Redis, cfg.APIRateLimit, cfg.APIRateWindow)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(rateLimit)

	players := v1.Group("/players")
	{
		players.POST("", h.CreatePlayer)
		players.GET("", h.ListPlayers)

		// read-only leaderboard; other verbs get 405
		players.GET("/top-winners", h.TopWinners)
		for _, m := range []string{"POST", "PUT", "PATCH", "DELETE"} {
			players.Handle(m, "/top-winners", handlers.MethodNotAllowed)
		}

		players.GET("/:id", h.GetPlayer)
		players.PATCH("/:id", h.RenamePlayer)
	}

	games := v1.Group("/games")
	{
		games.POST("", h.CreateGame)
		games.GET("", h.ListGames)
		games.GET("/:id", h.GetGame)
		games.GET("/:id/rounds", h.ListRounds)
		games.POST("/:id/rounds", h.RecordRound)
		games.POST("/:id/rounds/placeholder", h.RecordPlaceholderRound)
		games.GET("/:id/audit", h.GameAudit)
	}

	// Spectator feed; not rate limited, the connection is long-lived
	r.GET("/api/v1/games/:id/events", ws.HandleGameEvents(d.Hub, d.Engine, cfg.AllowedOrigin))
}
