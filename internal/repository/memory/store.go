package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"rps_arena/internal/domain"
	"rps_arena/internal/repository"
)

// Store keeps players, games and rounds in process memory.
// It implements the same contracts as the Postgres repositories.
type Store struct {
	mu sync.RWMutex

	players map[int64]*domain.Player
	games   map[int64]*domain.Game
	rounds  map[int64][]*domain.Round
	audit   []*domain.AuditLog

	gameLocks map[int64]*sync.Mutex

	playerSeq int64
	gameSeq   int64
	roundSeq  int64
	auditSeq  int64

	now func() time.Time
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		players:   make(map[int64]*domain.Player),
		games:     make(map[int64]*domain.Game),
		rounds:    make(map[int64][]*domain.Round),
		gameLocks: make(map[int64]*sync.Mutex),
		now:       time.Now,
	}
}

var (
	_ repository.PlayerStore      = (*Store)(nil)
	_ repository.MatchStore       = (*Store)(nil)
	_ repository.LeaderboardStore = (*Store)(nil)
	_ repository.AuditStore       = (*Store)(nil)
)

func (s *Store) Create(ctx context.Context, p *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTakenLocked(p.Name, 0) {
		return repository.ErrConflict
	}

	s.playerSeq++
	p.ID = s.playerSeq
	p.CreatedAt = s.now()
	stored := *p
	s.players[p.ID] = &stored
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Player, 0, len(s.players))
	for _, p := range s.players {
		c := *p
		res = append(res, &c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return truncate(res, limit), nil
}

func (s *Store) UpdateName(ctx context.Context, id int64, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if s.nameTakenLocked(name, id) {
		return nil, repository.ErrConflict
	}
	p.Name = name
	c := *p
	return &c, nil
}

func (s *Store) nameTakenLocked(name string, except int64) bool {
	for id, p := range s.players {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) CreateGame(ctx context.Context, g *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[g.Player1ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.players[g.Player2ID]; !ok {
		return repository.ErrNotFound
	}

	s.gameSeq++
	g.ID = s.gameSeq
	g.CreatedAt = s.now()
	g.UpdatedAt = g.CreatedAt
	s.games[g.ID] = g.Clone()
	s.gameLocks[g.ID] = &sync.Mutex{}
	return nil
}

func (s *Store) GetGame(ctx context.Context, id int64) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return g.Clone(), nil
}

// ListGames returns the newest games first.
func (s *Store) ListGames(ctx context.Context, limit int) ([]*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Game, 0, len(s.games))
	for _, g := range s.games {
		res = append(res, g.Clone())
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return truncate(res, limit), nil
}

func (s *Store) ListRounds(ctx context.Context, gameID int64) ([]*domain.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Round, 0, len(s.rounds[gameID]))
	for _, r := range s.rounds[gameID] {
		res = append(res, r.Clone())
	}
	return res, nil
}

// TopWinners ranks players by won games, ties by id.
func (s *Store) TopWinners(ctx context.Context, limit int) ([]domain.WinnerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wins := make(map[int64]int64, len(s.players))
	for _, g := range s.games {
		if g.WinnerID != nil {
			wins[*g.WinnerID]++
		}
	}

	res := make([]domain.WinnerEntry, 0, len(s.players))
	for _, p := range s.players {
		res = append(res, domain.WinnerEntry{PlayerID: p.ID, Name: p.Name, TotalWins: wins[p.ID]})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].TotalWins != res[j].TotalWins {
			return res[i].TotalWins > res[j].TotalWins
		}
		return res[i].PlayerID < res[j].PlayerID
	})
	return truncate(res, limit), nil
}

// InTx buffers writes and applies them only when fn succeeds.
// Games locked through the tx stay locked until InTx returns.
func (s *Store) InTx(ctx context.Context, fn func(tx repository.MatchTx) error) error {
	tx := &memTx{store: s, games: make(map[int64]*domain.Game)}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type memTx struct {
	store  *Store
	locked []*sync.Mutex
	games  map[int64]*domain.Game
	rounds []*domain.Round
}

func (t *memTx) LockGame(ctx context.Context, id int64) (*domain.Game, error) {
	t.store.mu.RLock()
	lock, ok := t.store.gameLocks[id]
	t.store.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}

	lock.Lock()
	t.locked = append(t.locked, lock)

	return t.store.GetGame(ctx, id)
}

func (t *memTx) CreateRound(ctx context.Context, r *domain.Round) error {
	t.rounds = append(t.rounds, r)
	return nil
}

func (t *memTx) UpdateGame(ctx context.Context, g *domain.Game) error {
	t.store.mu.RLock()
	_, ok := t.store.games[g.ID]
	t.store.mu.RUnlock()
	if !ok {
		return repository.ErrNotFound
	}
	t.games[g.ID] = g
	return nil
}

func (t *memTx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, r := range t.rounds {
		s.roundSeq++
		r.ID = s.roundSeq
		r.CreatedAt = now
		s.rounds[r.GameID] = append(s.rounds[r.GameID], r.Clone())
	}
	for id, g := range t.games {
		g.UpdatedAt = now
		s.games[id] = g.Clone()
	}
}

func (t *memTx) release() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.locked[i].Unlock()
	}
	t.locked = nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
