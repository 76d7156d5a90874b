package handlers

import (
	"net/http"

	"rps_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

type createGameRequest struct {
	Player1ID int64 `json:"player_1" binding:"required,gt=0"`
	Player2ID int64 `json:"player_2" binding:"required,gt=0"`
}

func (h *Handler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if !bindJSON(c, &req) {
		return
	}

	g, err := h.Matches.CreateGame(c.Request.Context(), req.Player1ID, req.Player2ID)
	if err != nil {
		writeError(c, err, "failed to create game")
		return
	}
	h.Audit.LogGame(c.Request.Context(), g.ID, domain.AuditActionGameCreated, c.ClientIP(), map[string]any{
		"player_1": g.Player1ID,
		"player_2": g.Player2ID,
	})
	c.JSON(http.StatusCreated, g)
}

func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.Matches.ListGames(c.Request.Context(), queryLimit(c, defaultListLimit))
	if err != nil {
		writeError(c, err, "failed to list games")
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame returns the game together with its rounds in play order.
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	g, err := h.Matches.GetGame(ctx, id)
	if err != nil {
		writeError(c, err, "failed to get game")
		return
	}
	rounds, err := h.Matches.ListRounds(ctx, id)
	if err != nil {
		writeError(c, err, "failed to get game")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":   g,
		"status": g.Status(),
		"rounds": rounds,
	})
}

// GameAudit returns the audit trail of a game.
func (h *Handler) GameAudit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if h.Audit == nil {
		c.JSON(http.StatusOK, []domain.AuditLog{})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Matches.GetGame(ctx, id); err != nil {
		writeError(c, err, "failed to get game")
		return
	}
	trail, err := h.Audit.GameTrail(ctx, id, queryLimit(c, 0))
	if err != nil {
		writeError(c, err, "failed to get audit trail")
		return
	}
	c.JSON(http.StatusOK, trail)
}
