package service

import (
	"context"
	"sync/atomic"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/metrics"
	"rps_arena/internal/repository"
)

const (
	DefaultLeaderboardLimit = 5
	MaxLeaderboardLimit     = 100
)

// LeaderboardCache keeps recent TopWinners results keyed by limit.
type LeaderboardCache interface {
	Get(ctx context.Context, limit int) ([]domain.WinnerEntry, bool)
	Set(ctx context.Context, limit int, entries []domain.WinnerEntry)
	Invalidate(ctx context.Context)
}

type LeaderboardService struct {
	repo  repository.LeaderboardStore
	cache LeaderboardCache

	// generation moves on every invalidation; a fill started under an
	// older generation is not written back.
	generation atomic.Uint64
}

// NewLeaderboardService builds the service; cache may be nil.
func NewLeaderboardService(repo repository.LeaderboardStore, cache LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{repo: repo, cache: cache}
}

// ClampLimit maps non-positive limits to the default and caps large ones.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}

// TopWinners returns players ordered by won games, most first, ties by player id.
func (s *LeaderboardService) TopWinners(ctx context.Context, limit int) ([]domain.WinnerEntry, error) {
	limit = ClampLimit(limit)

	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, limit); ok {
			metrics.LeaderboardCache.WithLabelValues("hit").Inc()
			return entries, nil
		}
		metrics.LeaderboardCache.WithLabelValues("miss").Inc()
	}

	gen := s.generation.Load()
	entries, err := s.repo.TopWinners(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.WinnerEntry{}
	}

	s.fill(ctx, gen, limit, entries)
	return entries, nil
}

// Refresh recomputes the default leaderboard and stores it in the cache.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	gen := s.generation.Load()
	entries, err := s.repo.TopWinners(ctx, DefaultLeaderboardLimit)
	if err != nil {
		return err
	}
	s.fill(ctx, gen, DefaultLeaderboardLimit, entries)
	return nil
}

// fill stores entries unless an invalidation happened since gen was read.
func (s *LeaderboardService) fill(ctx context.Context, gen uint64, limit int, entries []domain.WinnerEntry) {
	if s.cache == nil || s.generation.Load() != gen {
		return
	}
	s.cache.Set(ctx, limit, entries)
}

func (s *LeaderboardService) invalidate(reason string, args ...any) {
	if s.cache == nil {
		return
	}
	s.generation.Add(1)
	s.cache.Invalidate(context.Background())
	logger.Debug("leaderboard cache invalidated", append([]any{"reason", reason}, args...)...)
}

// OnRound drops cached standings whenever a game finishes.
func (s *LeaderboardService) OnRound(outcome *RoundOutcome) {
	if !outcome.Finished {
		return
	}
	s.invalidate("game_finished", "game_id", outcome.Game.ID)
}

// OnPlayerChange drops cached standings when a player joins or is renamed.
func (s *LeaderboardService) OnPlayerChange(p *domain.Player) {
	s.invalidate("player_changed", "player_id", p.ID)
}
