package repository

import (
	"context"
	"errors"

	"rps_arena/internal/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// PlayerStore persists players.
type PlayerStore interface {
	Create(ctx context.Context, p *domain.Player) error
	GetByID(ctx context.Context, id int64) (*domain.Player, error)
	List(ctx context.Context, limit int) ([]*domain.Player, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Player, error)
}

// MatchTx is the read-modify-write view of a single game.
// LockGame holds the game exclusively until the transaction ends.
type MatchTx interface {
	LockGame(ctx context.Context, id int64) (*domain.Game, error)
	CreateRound(ctx context.Context, r *domain.Round) error
	UpdateGame(ctx context.Context, g *domain.Game) error
}

// MatchStore persists games and rounds.
type MatchStore interface {
	// InTx commits everything written through tx when fn returns nil
	// and discards it otherwise.
	InTx(ctx context.Context, fn func(tx MatchTx) error) error

	CreateGame(ctx context.Context, g *domain.Game) error
	GetGame(ctx context.Context, id int64) (*domain.Game, error)
	ListGames(ctx context.Context, limit int) ([]*domain.Game, error)
	ListRounds(ctx context.Context, gameID int64) ([]*domain.Round, error)
}

// LeaderboardStore runs the grouped win-count query.
type LeaderboardStore interface {
	TopWinners(ctx context.Context, limit int) ([]domain.WinnerEntry, error)
}

// AuditStore keeps the append-only audit trail.
type AuditStore interface {
	CreateAudit(ctx context.Context, log *domain.AuditLog) error
	ListAuditByGame(ctx context.Context, gameID int64, limit int) ([]*domain.AuditLog, error)
	ListAuditByAction(ctx context.Context, action string, limit int) ([]*domain.AuditLog, error)
}
