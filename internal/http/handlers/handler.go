package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/service"

	"github.com/gin-gonic/gin"
)

// Leaderboard is the read side used by GET /players/top-winners.
type Leaderboard interface {
	TopWinners(ctx context.Context, limit int) ([]domain.WinnerEntry, error)
}

type Handler struct {
	Players     *service.PlayerService
	Matches     *service.MatchEngine
	Leaderboard Leaderboard
	Audit       *service.AuditService
}

func NewHandler(players *service.PlayerService, matches *service.MatchEngine, leaderboard Leaderboard, audit *service.AuditService) *Handler {
	return &Handler{
		Players:     players,
		Matches:     matches,
		Leaderboard: leaderboard,
		Audit:       audit,
	}
}

// pathID извлекает числовой :id из пути
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// queryLimit reads ?limit=, falling back to def when absent or malformed.
func queryLimit(c *gin.Context, def int) int {
	v := c.Query("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// writeError maps service errors to a status code. Unknown errors are logged
// and reported as 500 with a generic message.
func writeError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrGameAlreadyFinished),
		errors.Is(err, service.ErrInvalidMove),
		errors.Is(err, service.ErrSamePlayer),
		errors.Is(err, service.ErrInvalidPlayerName):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPlayerNameTaken):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error(msg, "error", err, "path", c.FullPath())
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
