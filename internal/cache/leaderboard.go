package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const leaderboardPrefix = "leaderboard:top:"

// LeaderboardCache stores TopWinners results in Redis as JSON, one key per limit.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

func leaderboardKey(limit int) string {
	return leaderboardPrefix + strconv.Itoa(limit)
}

func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]domain.WinnerEntry, bool) {
	raw, err := c.rdb.Get(ctx, leaderboardKey(limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("leaderboard cache read failed", "error", err)
		}
		return nil, false
	}

	var entries []domain.WinnerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []domain.WinnerEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, leaderboardKey(limit), raw, c.ttl).Err(); err != nil {
		logger.Warn("leaderboard cache write failed", "error", err)
	}
}

// Invalidate drops every cached limit.
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, leaderboardPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("leaderboard cache scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("leaderboard cache invalidate failed", "error", err)
	}
}
