package service

import (
	"errors"

	"rps_arena/internal/game"
)

var (
	ErrGameNotFound        = errors.New("the game does not exist")
	ErrGameAlreadyFinished = errors.New("the game has already finished")
	ErrInvalidMove         = game.ErrInvalidMove

	ErrPlayerNotFound    = errors.New("player not found")
	ErrSamePlayer        = errors.New("a game needs two different players")
	ErrPlayerNameTaken   = errors.New("player name already taken")
	ErrInvalidPlayerName = errors.New("player name must be between 1 and 100 characters")
)
