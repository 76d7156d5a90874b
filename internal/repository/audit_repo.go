package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"rps_arena/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAudit inserts a new audit log entry
func (r *AuditRepository) CreateAudit(ctx context.Context, log *domain.AuditLog) error {
	detailsJSON, err := json.Marshal(log.Details)
	if err != nil || log.Details == nil {
		detailsJSON = []byte("{}")
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO audit_logs (player_id, game_id, action, details, ip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, log.PlayerID, log.GameID, log.Action, detailsJSON, log.IP).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// ListAuditByGame returns the audit trail of a game, oldest first
func (r *AuditRepository) ListAuditByGame(ctx context.Context, gameID int64, limit int) ([]*domain.AuditLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, player_id, game_id, action, details, ip, created_at
		FROM audit_logs
		WHERE game_id = $1
		ORDER BY id
		LIMIT $2
	`, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit by game: %w", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

// ListAuditByAction returns the newest audit logs with the given action
func (r *AuditRepository) ListAuditByAction(ctx context.Context, action string, limit int) ([]*domain.AuditLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, player_id, game_id, action, details, ip, created_at
		FROM audit_logs
		WHERE action = $1
		ORDER BY id DESC
		LIMIT $2
	`, action, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit by action: %w", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

func scanAuditLogs(rows pgx.Rows) ([]*domain.AuditLog, error) {
	var logs []*domain.AuditLog
	for rows.Next() {
		var log domain.AuditLog
		var detailsJSON []byte
		if err := rows.Scan(&log.ID, &log.PlayerID, &log.GameID, &log.Action, &detailsJSON, &log.IP, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &log.Details)
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}
