package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rps_arena/internal/cache"
	"rps_arena/internal/config"
	"rps_arena/internal/db"
	httpServer "rps_arena/internal/http"
	"rps_arena/internal/http/handlers"
	"rps_arena/internal/logger"
	"rps_arena/internal/repository"
	"rps_arena/internal/repository/memory"
	"rps_arena/internal/scheduler"
	"rps_arena/internal/service"
	"rps_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
)

type stores struct {
	players     repository.PlayerStore
	matches     repository.MatchStore
	leaderboard repository.LeaderboardStore
	audit       repository.AuditStore
}

func main() {
	cfg := config.MustLoad()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx := context.Background()
	checks := map[string]handlers.Pinger{}

	var st stores
	switch cfg.Storage {
	case config.StorageMemory:
		mem := memory.NewStore()
		st = stores{players: mem, matches: mem, leaderboard: mem, audit: mem}
		logger.Warn("using in-memory storage; data is lost on restart")
	default:
		pool := db.Connect(ctx, cfg.DatabaseURL)
		defer pool.Close()
		checks["database"] = pool
		st = stores{
			players:     repository.NewPlayerRepository(pool),
			matches:     repository.NewGameRepository(pool),
			leaderboard: repository.NewLeaderboardRepository(pool),
			audit:       repository.NewAuditRepository(pool),
		}
	}

	rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	var lbCache service.LeaderboardCache
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		lbCache = cache.NewLeaderboardCache(rdb, cfg.LeaderboardCacheTTL)
	}

	players := service.NewPlayerService(st.players)
	engine := service.NewMatchEngine(st.matches, st.players)
	leaderboard := service.NewLeaderboardService(st.leaderboard, lbCache)
	audit := service.NewAuditService(st.audit)

	hub := ws.NewHub()
	engine.OnRound(hub.OnRound)
	engine.OnRound(leaderboard.OnRound)
	engine.OnRound(audit.OnRound)
	players.OnChange(leaderboard.OnPlayerChange)

	var sched gocron.Scheduler
	if lbCache != nil {
		s, err := scheduler.StartLeaderboardRefresh(leaderboard, cfg.LeaderboardRefresh)
		if err != nil {
			logger.Error("leaderboard refresh not scheduled", "error", err)
		} else {
			sched = s
		}
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpServer.NewRouter(httpServer.Deps{
		Config:  cfg,
		Handler: handlers.NewHandler(players, engine, leaderboard, audit),
		Health:  handlers.NewHealthHandler(cfg.Version, checks),
		Engine:  engine,
		Hub:     hub,
		Redis:   rdb,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.Storage, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			logger.Warn("scheduler shutdown", "error", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
