package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rps_arena/internal/domain"
	"rps_arena/internal/game"
	"rps_arena/internal/logger"
	"rps_arena/internal/metrics"
	"rps_arena/internal/repository"
)

// RoundOutcome is what a recorded round leaves behind.
type RoundOutcome struct {
	Round    *domain.Round
	Game     *domain.Game
	Side     game.Side
	Finished bool
}

// RoundNotifyFunc is called after a round has been committed.
type RoundNotifyFunc func(outcome *RoundOutcome)

// MatchEngine owns every Game and Round mutation: it resolves rounds,
// tallies wins and freezes a game once a player reaches three wins.
type MatchEngine struct {
	store   repository.MatchStore
	players repository.PlayerStore

	mu        sync.RWMutex
	listeners []RoundNotifyFunc
}

func NewMatchEngine(store repository.MatchStore, players repository.PlayerStore) *MatchEngine {
	return &MatchEngine{
		store:   store,
		players: players,
	}
}

// OnRound registers fn to run after each committed round
func (e *MatchEngine) OnRound(fn RoundNotifyFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// CreateGame starts a game between two distinct registered players.
func (e *MatchEngine) CreateGame(ctx context.Context, player1ID, player2ID int64) (*domain.Game, error) {
	if player1ID == player2ID {
		return nil, ErrSamePlayer
	}
	for _, id := range []int64{player1ID, player2ID} {
		if _, err := e.players.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, err
		}
	}

	g := &domain.Game{Player1ID: player1ID, Player2ID: player2ID}
	if err := e.store.CreateGame(ctx, g); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	metrics.GamesCreated.Inc()
	logger.WithContext(ctx).Info("game created", "game_id", g.ID, "player_1", player1ID, "player_2", player2ID)
	return g, nil
}

func (e *MatchEngine) GetGame(ctx context.Context, id int64) (*domain.Game, error) {
	g, err := e.store.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func (e *MatchEngine) ListGames(ctx context.Context, limit int) ([]*domain.Game, error) {
	return e.store.ListGames(ctx, limit)
}

// ListRounds returns the rounds of a game in play order.
func (e *MatchEngine) ListRounds(ctx context.Context, gameID int64) ([]*domain.Round, error) {
	if _, err := e.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return e.store.ListRounds(ctx, gameID)
}

// RecordRound resolves move1 (player_1) against move2 (player_2) and applies
// the result to the game. The round and the game update are committed together.
func (e *MatchEngine) RecordRound(ctx context.Context, gameID int64, move1, move2 domain.Move) (*RoundOutcome, error) {
	var out *RoundOutcome

	err := e.store.InTx(ctx, func(tx repository.MatchTx) error {
		g, err := lockPlayable(ctx, tx, gameID)
		if err != nil {
			return err
		}

		side, err := game.Resolve(move1, move2)
		if err != nil {
			return err
		}

		m1, m2 := move1, move2
		round := &domain.Round{
			GameID:      g.ID,
			Player1Move: &m1,
			Player2Move: &m2,
			WinnerID:    winnerFor(g, side),
		}
		if err := tx.CreateRound(ctx, round); err != nil {
			return err
		}

		tally(g, side)

		if err := tx.UpdateGame(ctx, g); err != nil {
			return err
		}

		out = &RoundOutcome{Round: round, Game: g, Side: side, Finished: g.IsFinished}
		return nil
	})
	if err != nil {
		return nil, e.rejected(ctx, gameID, err)
	}

	metrics.RoundsRecorded.WithLabelValues(out.Side.String()).Inc()
	if out.Finished {
		metrics.GamesFinished.Inc()
		logger.WithContext(ctx).Info("game finished", "game_id", gameID, "winner_id", *out.Game.WinnerID,
			"player_1_wins", out.Game.Player1Wins, "player_2_wins", out.Game.Player2Wins)
	}
	logger.WithContext(ctx).Debug("round recorded", "game_id", gameID, "round_id", out.Round.ID, "result", out.Side.String())

	e.notify(out)
	return out, nil
}

// RecordPlaceholderRound stores a round without moves. It never resolves a
// winner and never touches the win counters, but finished games still reject it.
func (e *MatchEngine) RecordPlaceholderRound(ctx context.Context, gameID int64) (*RoundOutcome, error) {
	var out *RoundOutcome

	err := e.store.InTx(ctx, func(tx repository.MatchTx) error {
		g, err := lockPlayable(ctx, tx, gameID)
		if err != nil {
			return err
		}

		round := &domain.Round{GameID: g.ID}
		if err := tx.CreateRound(ctx, round); err != nil {
			return err
		}

		out = &RoundOutcome{Round: round, Game: g, Side: game.SideTie, Finished: g.IsFinished}
		return nil
	})
	if err != nil {
		return nil, e.rejected(ctx, gameID, err)
	}

	metrics.RoundsRecorded.WithLabelValues("placeholder").Inc()
	e.notify(out)
	return out, nil
}

func lockPlayable(ctx context.Context, tx repository.MatchTx, gameID int64) (*domain.Game, error) {
	g, err := tx.LockGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if g.IsFinished {
		return nil, ErrGameAlreadyFinished
	}
	return g, nil
}

// winnerFor maps a side to the player sitting on it; nil on a tie.
func winnerFor(g *domain.Game, side game.Side) *int64 {
	var id int64
	switch side {
	case game.SidePlayer1:
		id = g.Player1ID
	case game.SidePlayer2:
		id = g.Player2ID
	default:
		return nil
	}
	return &id
}

// tally credits the round to the winning side and closes the game at three wins.
// A finished game is left untouched.
func tally(g *domain.Game, side game.Side) {
	if g.IsFinished {
		return
	}

	switch side {
	case game.SidePlayer1:
		g.Player1Wins++
	case game.SidePlayer2:
		g.Player2Wins++
	default:
		return
	}

	if g.Player1Wins >= domain.WinsToFinish || g.Player2Wins >= domain.WinsToFinish {
		g.IsFinished = true
		g.WinnerID = winnerFor(g, side)
	}
}

func (e *MatchEngine) rejected(ctx context.Context, gameID int64, err error) error {
	switch {
	case errors.Is(err, ErrGameNotFound):
		metrics.RejectedRounds.WithLabelValues("not_found").Inc()
	case errors.Is(err, ErrGameAlreadyFinished):
		metrics.RejectedRounds.WithLabelValues("finished").Inc()
	case errors.Is(err, ErrInvalidMove):
		metrics.RejectedRounds.WithLabelValues("invalid_move").Inc()
	default:
		logger.WithContext(ctx).Error("failed to record round", "game_id", gameID, "error", err)
		return fmt.Errorf("record round for game %d: %w", gameID, err)
	}
	return err
}

func (e *MatchEngine) notify(out *RoundOutcome) {
	e.mu.RLock()
	listeners := append([]RoundNotifyFunc(nil), e.listeners...)
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(out)
	}
}
