package domain

import "time"

// AuditLog records a state change of a player or a game
type AuditLog struct {
	ID        int64          `db:"id" json:"id"`
	PlayerID  *int64         `db:"player_id" json:"player_id,omitempty"`
	GameID    *int64         `db:"game_id" json:"game_id,omitempty"`
	Action    string         `db:"action" json:"action"`
	Details   map[string]any `db:"details" json:"details"`
	IP        string         `db:"ip" json:"ip,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Audit actions
const (
	// Player actions
	AuditActionPlayerCreated = "player_created"
	AuditActionPlayerRenamed = "player_renamed"

	// Game actions
	AuditActionGameCreated  = "game_created"
	AuditActionGameFinished = "game_finished"
	AuditActionRoundSkipped = "round_placeholder"
)
