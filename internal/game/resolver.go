package game

import (
	"errors"
	"strings"

	"rps_arena/internal/domain"
)

var ErrInvalidMove = errors.New("invalid move")

// Side - which seat of a game took the round
type Side int

const (
	SideTie Side = iota
	SidePlayer1
	SidePlayer2
)

func (s Side) String() string {
	switch s {
	case SidePlayer1:
		return "player_1"
	case SidePlayer2:
		return "player_2"
	default:
		return "tie"
	}
}

// beats maps each move to the move it defeats
var beats = map[domain.Move]domain.Move{
	domain.MoveRock:     domain.MoveScissors,
	domain.MoveScissors: domain.MovePaper,
	domain.MovePaper:    domain.MoveRock,
}

// ParseMove accepts a move name in any case, surrounded by any whitespace.
func ParseMove(s string) (domain.Move, error) {
	m := domain.Move(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidMove(m) {
		return "", ErrInvalidMove
	}
	return m, nil
}

func IsValidMove(m domain.Move) bool {
	_, ok := beats[m]
	return ok
}

// Resolve decides a round between the player_1 move and the player_2 move.
// It only knows seats; mapping a side to a player is up to the caller.
func Resolve(move1, move2 domain.Move) (Side, error) {
	if !IsValidMove(move1) || !IsValidMove(move2) {
		return SideTie, ErrInvalidMove
	}

	if move1 == move2 {
		return SideTie, nil
	}
	if beats[move1] == move2 {
		return SidePlayer1, nil
	}
	return SidePlayer2, nil
}
