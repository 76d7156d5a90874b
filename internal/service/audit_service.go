package service

import (
	"context"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/repository"
)

const defaultAuditLimit = 100

// AuditService handles audit logging. Write failures are logged and never
// fail the request that triggered them. A nil *AuditService is a no-op.
type AuditService struct {
	repo repository.AuditStore
}

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, log *domain.AuditLog) {
	if s == nil {
		return
	}
	if err := s.repo.CreateAudit(ctx, log); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", log.Action)
	}
}

// LogPlayer logs a player action with the caller's IP
func (s *AuditService) LogPlayer(ctx context.Context, playerID int64, action, ip string, details map[string]any) {
	s.Log(ctx, &domain.AuditLog{
		PlayerID: &playerID,
		Action:   action,
		Details:  details,
		IP:       ip,
	})
}

// LogGame logs a game action with the caller's IP
func (s *AuditService) LogGame(ctx context.Context, gameID int64, action, ip string, details map[string]any) {
	s.Log(ctx, &domain.AuditLog{
		GameID:  &gameID,
		Action:  action,
		Details: details,
		IP:      ip,
	})
}

// OnRound records finished games and placeholder rounds.
func (s *AuditService) OnRound(o *RoundOutcome) {
	if s == nil {
		return
	}
	ctx := context.Background()

	switch {
	case o.Round.IsPlaceholder():
		s.LogGame(ctx, o.Game.ID, domain.AuditActionRoundSkipped, "", map[string]any{
			"round_id": o.Round.ID,
		})
	case o.Finished:
		s.Log(ctx, &domain.AuditLog{
			PlayerID: o.Game.WinnerID,
			GameID:   &o.Game.ID,
			Action:   domain.AuditActionGameFinished,
			Details: map[string]any{
				"round_id":      o.Round.ID,
				"player_1_wins": o.Game.Player1Wins,
				"player_2_wins": o.Game.Player2Wins,
			},
		})
	}
}

// GameTrail returns the audit entries of a game, oldest first.
func (s *AuditService) GameTrail(ctx context.Context, gameID int64, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	logs, err := s.repo.ListAuditByGame(ctx, gameID, limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*domain.AuditLog{}
	}
	return logs, nil
}

// RecentByAction returns the newest entries for one action.
func (s *AuditService) RecentByAction(ctx context.Context, action string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.repo.ListAuditByAction(ctx, action, limit)
}
