package ws

import "rps_arena/internal/domain"

const (
	// server - client
	MsgSnapshot = "snapshot"
	MsgRound    = "round"
	MsgFinished = "finished"
)

// Event is pushed to every spectator of a game.
type Event struct {
	Type   string        `json:"type"`
	GameID int64         `json:"game_id"`
	Round  *domain.Round `json:"round,omitempty"`
	Game   *domain.Game  `json:"game"`
}
