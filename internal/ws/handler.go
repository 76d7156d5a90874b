package ws

import (
	"errors"
	"net/http"
	"strconv"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleGameEvents upgrades GET /games/:id/events to a spectator feed.
// The first message is a snapshot of the game; round and finished events follow.
func HandleGameEvents(hub *Hub, engine *service.MatchEngine, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}

		ctx := c.Request.Context()
		if _, err := engine.GetGame(ctx, gameID); err != nil {
			if errors.Is(err, service.ErrGameNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(gameID, conn, hub)
		err = hub.SubscribeWithSnapshot(client, func() (*domain.Game, error) {
			return engine.GetGame(ctx, gameID)
		})
		if err != nil {
			logger.Warn("ws snapshot failed", "game_id", gameID, "error", err)
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot failed"))
			_ = conn.Close()
			return
		}

		go client.Run()
	}
}
