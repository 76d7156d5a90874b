package domain

import "time"

// Player - a registered participant, identified by a unique display name
type Player struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WinnerEntry is one leaderboard row.
type WinnerEntry struct {
	PlayerID  int64  `json:"id"`
	Name      string `json:"name"`
	TotalWins int64  `json:"total_wins"`
}
