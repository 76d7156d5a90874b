package repository

import (
	"context"
	"fmt"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LeaderboardRepository struct {
	db *pgxpool.Pool
}

func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// TopWinners counts won games per player in one grouped query.
// Players without wins are kept with 0; equal counts are ordered by player id.
func (r *LeaderboardRepository) TopWinners(ctx context.Context, limit int) ([]domain.WinnerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, COALESCE(w.wins, 0) AS total_wins
		FROM players p
		LEFT JOIN (
			SELECT winner_id, COUNT(*) AS wins
			FROM games
			WHERE winner_id IS NOT NULL
			GROUP BY winner_id
		) w ON w.winner_id = p.id
		ORDER BY total_wins DESC, p.id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top winners: %w", err)
	}
	defer rows.Close()

	res := []domain.WinnerEntry{}
	for rows.Next() {
		var e domain.WinnerEntry
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.TotalWins); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
