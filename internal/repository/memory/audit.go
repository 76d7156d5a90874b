package memory

import (
	"context"
	"maps"

	"rps_arena/internal/domain"
)

func (s *Store) CreateAudit(ctx context.Context, log *domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auditSeq++
	log.ID = s.auditSeq
	log.CreatedAt = s.now()
	s.audit = append(s.audit, cloneAudit(log))
	return nil
}

// ListAuditByGame returns entries for gameID, oldest first.
func (s *Store) ListAuditByGame(ctx context.Context, gameID int64, limit int) ([]*domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*domain.AuditLog
	for _, l := range s.audit {
		if l.GameID != nil && *l.GameID == gameID {
			res = append(res, cloneAudit(l))
		}
	}
	return truncate(res, limit), nil
}

// ListAuditByAction returns entries with action, newest first.
func (s *Store) ListAuditByAction(ctx context.Context, action string, limit int) ([]*domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*domain.AuditLog
	for i := len(s.audit) - 1; i >= 0; i-- {
		if s.audit[i].Action == action {
			res = append(res, cloneAudit(s.audit[i]))
		}
	}
	return truncate(res, limit), nil
}

func cloneAudit(l *domain.AuditLog) *domain.AuditLog {
	c := *l
	c.Details = maps.Clone(l.Details)
	return &c
}
