package handlers

import (
	"net/http"

	"rps_arena/internal/service"

	"github.com/gin-gonic/gin"
)

// TopWinners returns players ordered by finished games won.
func (h *Handler) TopWinners(c *gin.Context) {
	limit := service.ClampLimit(queryLimit(c, service.DefaultLeaderboardLimit))

	top, err := h.Leaderboard.TopWinners(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err, "failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, top)
}

// MethodNotAllowed answers mutating verbs on read-only resources.
func MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodGet)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
