package repository

import (
	"context"
	"errors"
	"fmt"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const gameColumns = `id, player_1_id, player_2_id, player_1_wins, player_2_wins, is_finished, winner_id, created_at, updated_at`

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) InTx(ctx context.Context, fn func(tx MatchTx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgMatchTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *GameRepository) CreateGame(ctx context.Context, g *domain.Game) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO games (player_1_id, player_2_id)
		 VALUES ($1, $2)
		 RETURNING `+gameColumns,
		g.Player1ID,
		g.Player2ID,
	).Scan(gameDest(g)...)
	if err != nil {
		return mapWriteErr("create game", err)
	}
	return nil
}

func (r *GameRepository) GetGame(ctx context.Context, id int64) (*domain.Game, error) {
	var g domain.Game
	err := r.db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`,
		id,
	).Scan(gameDest(&g)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	return &g, nil
}

func (r *GameRepository) ListGames(ctx context.Context, limit int) ([]*domain.Game, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+gameColumns+`
		 FROM games
		 ORDER BY id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	res := []*domain.Game{}
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(gameDest(&g)...); err != nil {
			return nil, err
		}
		res = append(res, &g)
	}
	return res, rows.Err()
}

// ListRounds returns the rounds of a game in play order.
func (r *GameRepository) ListRounds(ctx context.Context, gameID int64) ([]*domain.Round, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, game_id, player_1_move, player_2_move, winner_id, created_at
		 FROM rounds
		 WHERE game_id = $1
		 ORDER BY id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	res := []*domain.Round{}
	for rows.Next() {
		var (
			rd     domain.Round
			m1, m2 *string
		)
		if err := rows.Scan(&rd.ID, &rd.GameID, &m1, &m2, &rd.WinnerID, &rd.CreatedAt); err != nil {
			return nil, err
		}
		rd.Player1Move = toMove(m1)
		rd.Player2Move = toMove(m2)
		res = append(res, &rd)
	}
	return res, rows.Err()
}

type pgMatchTx struct {
	tx pgx.Tx
}

// LockGame reads the game row with FOR UPDATE, so concurrent rounds on the same game queue up.
func (t *pgMatchTx) LockGame(ctx context.Context, id int64) (*domain.Game, error) {
	var g domain.Game
	err := t.tx.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(gameDest(&g)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock game %d: %w", id, err)
	}
	return &g, nil
}

func (t *pgMatchTx) CreateRound(ctx context.Context, rd *domain.Round) error {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO rounds (game_id, player_1_move, player_2_move, winner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rd.GameID,
		fromMove(rd.Player1Move),
		fromMove(rd.Player2Move),
		rd.WinnerID,
	).Scan(&rd.ID, &rd.CreatedAt)
	if err != nil {
		return fmt.Errorf("create round: %w", err)
	}
	return nil
}

func (t *pgMatchTx) UpdateGame(ctx context.Context, g *domain.Game) error {
	err := t.tx.QueryRow(ctx,
		`UPDATE games
		 SET player_1_wins = $1, player_2_wins = $2, is_finished = $3, winner_id = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING updated_at`,
		g.Player1Wins,
		g.Player2Wins,
		g.IsFinished,
		g.WinnerID,
		g.ID,
	).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update game %d: %w", g.ID, err)
	}
	return nil
}

func gameDest(g *domain.Game) []any {
	return []any{
		&g.ID,
		&g.Player1ID,
		&g.Player2ID,
		&g.Player1Wins,
		&g.Player2Wins,
		&g.IsFinished,
		&g.WinnerID,
		&g.CreatedAt,
		&g.UpdatedAt,
	}
}

func toMove(s *string) *domain.Move {
	if s == nil {
		return nil
	}
	m := domain.Move(*s)
	return &m
}

func fromMove(m *domain.Move) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}
