package main

import (
	"context"
	"errors"

	"rps_arena/internal/config"
	"rps_arena/internal/db"
	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/repository"
	"rps_arena/internal/service"
)

// seed creates a few demo players and plays one finished game between the
// first two, so the leaderboard has something to show.
func main() {
	names := []string{"alice", "bob", "carol", "dave"}

	cfg := config.MustLoad()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if cfg.Storage == config.StorageMemory {
		logger.Fatal("seed needs STORAGE=postgres")
	}

	ctx := context.Background()
	pool := db.Connect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	playerRepo := repository.NewPlayerRepository(pool)
	players := service.NewPlayerService(playerRepo)
	engine := service.NewMatchEngine(repository.NewGameRepository(pool), playerRepo)

	existing, err := players.List(ctx, 100)
	if err != nil {
		logger.Fatal("list players failed", "error", err)
	}
	byName := make(map[string]*domain.Player, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	var seeded []*domain.Player
	for _, name := range names {
		if p, ok := byName[name]; ok {
			logger.Info("player already exists", "player_id", p.ID, "name", name)
			seeded = append(seeded, p)
			continue
		}
		p, err := players.Create(ctx, name)
		if err != nil {
			if errors.Is(err, service.ErrPlayerNameTaken) {
				continue
			}
			logger.Fatal("create player failed", "name", name, "error", err)
		}
		seeded = append(seeded, p)
	}
	if len(seeded) < 2 {
		logger.Fatal("not enough players to seed a game")
	}

	g, err := engine.CreateGame(ctx, seeded[0].ID, seeded[1].ID)
	if err != nil {
		logger.Fatal("create game failed", "error", err)
	}

	moves := [][2]domain.Move{
		{domain.MoveRock, domain.MoveScissors},
		{domain.MovePaper, domain.MovePaper},
		{domain.MoveScissors, domain.MoveRock},
		{domain.MovePaper, domain.MoveRock},
		{domain.MoveScissors, domain.MovePaper},
	}
	for _, m := range moves {
		out, err := engine.RecordRound(ctx, g.ID, m[0], m[1])
		if err != nil {
			logger.Fatal("record round failed", "game_id", g.ID, "error", err)
		}
		if out.Finished {
			logger.Info("game finished", "game_id", g.ID, "winner_id", *out.Game.WinnerID)
			break
		}
	}
}
