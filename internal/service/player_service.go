package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/repository"
)

const maxPlayerNameLen = 100

// PlayerService registers and renames players
type PlayerService struct {
	repo repository.PlayerStore

	mu        sync.RWMutex
	listeners []PlayerChangeFunc
}

// PlayerChangeFunc is called after a player has been created or renamed.
type PlayerChangeFunc func(p *domain.Player)

func NewPlayerService(repo repository.PlayerStore) *PlayerService {
	return &PlayerService{repo: repo}
}

// OnChange registers fn to run after each successful Create or Rename
func (s *PlayerService) OnChange(fn PlayerChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *PlayerService) notify(p *domain.Player) {
	s.mu.RLock()
	listeners := append([]PlayerChangeFunc(nil), s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(p)
	}
}

func (s *PlayerService) Create(ctx context.Context, name string) (*domain.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	p := &domain.Player{Name: name}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrPlayerNameTaken
		}
		return nil, err
	}

	logger.WithContext(ctx).Info("player created", "player_id", p.ID, "name", p.Name)
	s.notify(p)
	return p, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (*domain.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PlayerService) List(ctx context.Context, limit int) ([]*domain.Player, error) {
	return s.repo.List(ctx, limit)
}

// Rename changes the display name, the only mutable field of a player.
func (s *PlayerService) Rename(ctx context.Context, id int64, name string) (*domain.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrPlayerNameTaken
		}
		return nil, err
	}
	s.notify(p)
	return p, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxPlayerNameLen {
		return "", ErrInvalidPlayerName
	}
	return name, nil
}
