package handlers

import (
	"fmt"
	"net/http"

	"rps_arena/internal/game"
	"rps_arena/internal/logger"
	"rps_arena/internal/service"

	"github.com/gin-gonic/gin"
)

type roundRequest struct {
	Player1Move string `json:"player_1_move" binding:"required"`
	Player2Move string `json:"player_2_move" binding:"required"`
}

// RecordRound handles POST /games/:id/rounds.
func (h *Handler) RecordRound(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req roundRequest
	if !bindJSON(c, &req) {
		return
	}

	move1, err := game.ParseMove(req.Player1Move)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": gin.H{"player_1_move": "must be rock, paper or scissors"}})
		return
	}
	move2, err := game.ParseMove(req.Player2Move)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": gin.H{"player_2_move": "must be rock, paper or scissors"}})
		return
	}

	out, err := h.Matches.RecordRound(c.Request.Context(), id, move1, move2)
	if err != nil {
		writeError(c, err, "failed to record round")
		return
	}

	c.JSON(http.StatusCreated, h.roundResponse(c, out))
}

// RecordPlaceholderRound handles POST /games/:id/rounds/placeholder.
func (h *Handler) RecordPlaceholderRound(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	out, err := h.Matches.RecordPlaceholderRound(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to record round")
		return
	}

	c.JSON(http.StatusCreated, h.roundResponse(c, out))
}

func (h *Handler) ListRounds(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rounds, err := h.Matches.ListRounds(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to list rounds")
		return
	}
	c.JSON(http.StatusOK, rounds)
}

func (h *Handler) roundResponse(c *gin.Context, out *service.RoundOutcome) gin.H {
	resp := gin.H{
		"round":    out.Round,
		"finished": out.Finished,
	}
	if !out.Finished || out.Game.WinnerID == nil {
		return resp
	}

	resp["game"] = out.Game
	winner := fmt.Sprintf("player %d", *out.Game.WinnerID)
	if p, err := h.Players.Get(c.Request.Context(), *out.Game.WinnerID); err == nil {
		winner = p.Name
	} else {
		// the round is committed; a failed name lookup only degrades the message
		logger.WithContext(c.Request.Context()).Warn("winner lookup failed", "player_id", *out.Game.WinnerID, "error", err)
	}
	resp["message"] = fmt.Sprintf("The game has finished. Winner: %s!", winner)
	return resp
}
