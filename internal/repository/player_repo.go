package repository

import (
	"context"
	"errors"
	"fmt"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO players (name)
		 VALUES ($1)
		 RETURNING id, created_at`,
		p.Name,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return mapWriteErr("create player", err)
	}
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	var p domain.Player
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM players WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return &p, nil
}

func (r *PlayerRepository) List(ctx context.Context, limit int) ([]*domain.Player, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at
		 FROM players
		 ORDER BY id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	res := []*domain.Player{}
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

// UpdateName renames a player; the name is the only mutable field.
func (r *PlayerRepository) UpdateName(ctx context.Context, id int64, name string) (*domain.Player, error) {
	var p domain.Player
	err := r.db.QueryRow(ctx,
		`UPDATE players SET name = $1 WHERE id = $2
		 RETURNING id, name, created_at`,
		name, id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapWriteErr("rename player", err)
	}
	return &p, nil
}

// mapWriteErr turns constraint violations into store errors:
// a duplicate key is ErrConflict, a missing referenced row is ErrNotFound.
func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
