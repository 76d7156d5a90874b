package domain

import "time"

// Move - a hand shape submitted for one side of a round
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// Moves lists every playable move.
var Moves = []Move{MoveRock, MovePaper, MoveScissors}

// GameStatus is derived from Game.IsFinished.
type GameStatus string

const (
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinished   GameStatus = "finished"
)

// WinsToFinish is the round count a player needs to take a best-of-five game.
const WinsToFinish = 3

// Game - a first-to-three match between two players
type Game struct {
	ID          int64     `db:"id" json:"id"`
	Player1ID   int64     `db:"player_1_id" json:"player_1"`
	Player2ID   int64     `db:"player_2_id" json:"player_2"`
	Player1Wins int       `db:"player_1_wins" json:"player_1_wins"`
	Player2Wins int       `db:"player_2_wins" json:"player_2_wins"`
	IsFinished  bool      `db:"is_finished" json:"is_finished"`
	WinnerID    *int64    `db:"winner_id" json:"winner"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Status reports whether the game still accepts rounds.
func (g *Game) Status() GameStatus {
	if g.IsFinished {
		return GameStatusFinished
	}
	return GameStatusInProgress
}

// HasPlayer reports whether playerID takes part in the game.
func (g *Game) HasPlayer(playerID int64) bool {
	return g.Player1ID == playerID || g.Player2ID == playerID
}

// Clone returns a deep copy, so stores can hand out games without sharing the winner pointer.
func (g *Game) Clone() *Game {
	c := *g
	if g.WinnerID != nil {
		w := *g.WinnerID
		c.WinnerID = &w
	}
	return &c
}

// Round - one exchange of moves inside a game.
// Both moves are nil for a placeholder round.
type Round struct {
	ID          int64     `db:"id" json:"id"`
	GameID      int64     `db:"game_id" json:"game"`
	Player1Move *Move     `db:"player_1_move" json:"player_1_move"`
	Player2Move *Move     `db:"player_2_move" json:"player_2_move"`
	WinnerID    *int64    `db:"winner_id" json:"winner"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// IsPlaceholder reports whether the round was recorded without moves.
func (r *Round) IsPlaceholder() bool {
	return r.Player1Move == nil && r.Player2Move == nil
}

func (r *Round) Clone() *Round {
	c := *r
	if r.Player1Move != nil {
		m := *r.Player1Move
		c.Player1Move = &m
	}
	if r.Player2Move != nil {
		m := *r.Player2Move
		c.Player2Move = &m
	}
	if r.WinnerID != nil {
		w := *r.WinnerID
		c.WinnerID = &w
	}
	return &c
}
