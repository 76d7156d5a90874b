package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"rps_arena/internal/domain"
	"rps_arena/internal/game"
	"rps_arena/internal/repository"
	"rps_arena/internal/repository/memory"
)

type fixture struct {
	store  *memory.Store
	engine *MatchEngine
	p1, p2 *domain.Player
	game   *domain.Game
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	players := NewPlayerService(store)
	engine := NewMatchEngine(store, store)

	p1, err := players.Create(ctx, "Player 1")
	if err != nil {
		t.Fatalf("create player 1: %v", err)
	}
	p2, err := players.Create(ctx, "Player 2")
	if err != nil {
		t.Fatalf("create player 2: %v", err)
	}
	g, err := engine.CreateGame(ctx, p1.ID, p2.ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return &fixture{store: store, engine: engine, p1: p1, p2: p2, game: g}
}

func (f *fixture) rounds(t *testing.T) []*domain.Round {
	t.Helper()
	rounds, err := f.engine.ListRounds(context.Background(), f.game.ID)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	return rounds
}

func (f *fixture) reload(t *testing.T) *domain.Game {
	t.Helper()
	g, err := f.engine.GetGame(context.Background(), f.game.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	return g
}

func TestCreateGameStartsEmpty(t *testing.T) {
	f := newFixture(t)
	g := f.reload(t)

	if g.Player1Wins != 0 || g.Player2Wins != 0 || g.IsFinished || g.WinnerID != nil {
		t.Fatalf("new game not empty: %+v", g)
	}
}

func TestCreateGameValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.engine.CreateGame(ctx, f.p1.ID, f.p1.ID); !errors.Is(err, ErrSamePlayer) {
		t.Fatalf("same player error = %v; want ErrSamePlayer", err)
	}
	if _, err := f.engine.CreateGame(ctx, f.p1.ID, 999); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("missing player error = %v; want ErrPlayerNotFound", err)
	}
}

func TestRecordRoundPlayer1WinsRound(t *testing.T) {
	f := newFixture(t)

	out, err := f.engine.RecordRound(context.Background(), f.game.ID, domain.MoveRock, domain.MoveScissors)
	if err != nil {
		t.Fatalf("RecordRound: %v", err)
	}
	if out.Round.WinnerID == nil || *out.Round.WinnerID != f.p1.ID {
		t.Fatalf("round winner = %v; want player 1", out.Round.WinnerID)
	}
	if out.Side != game.SidePlayer1 {
		t.Fatalf("side = %s; want player_1", out.Side)
	}
	if out.Game.Player1Wins != 1 || out.Game.Player2Wins != 0 {
		t.Fatalf("score = %d-%d; want 1-0", out.Game.Player1Wins, out.Game.Player2Wins)
	}
	if out.Finished {
		t.Fatalf("game finished after one round")
	}
	if out.Round.ID == 0 {
		t.Fatalf("round id not assigned")
	}
}

func TestRecordRoundThreeWinsFinishesGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var out *RoundOutcome
	var err error
	for i := 0; i < 3; i++ {
		out, err = f.engine.RecordRound(ctx, f.game.ID, domain.MoveRock, domain.MoveScissors)
		if err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
		if i < 2 && out.Finished {
			t.Fatalf("game finished after %d rounds", i+1)
		}
	}

	if !out.Finished {
		t.Fatalf("outcome not finished after third win")
	}
	g := f.reload(t)
	if !g.IsFinished || g.WinnerID == nil || *g.WinnerID != f.p1.ID || g.Player1Wins != 3 {
		t.Fatalf("stored game = %+v; want finished, winner player 1, 3 wins", g)
	}
}

func TestRecordRoundPlayer2CanWin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.engine.RecordRound(ctx, f.game.ID, domain.MoveScissors, domain.MoveRock); err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
	}

	g := f.reload(t)
	if !g.IsFinished || *g.WinnerID != f.p2.ID || g.Player2Wins != 3 || g.Player1Wins != 0 {
		t.Fatalf("stored game = %+v; want player 2 winning 3-0", g)
	}
}

func TestRecordRoundTieLeavesScore(t *testing.T) {
	f := newFixture(t)

	out, err := f.engine.RecordRound(context.Background(), f.game.ID, domain.MoveRock, domain.MoveRock)
	if err != nil {
		t.Fatalf("RecordRound: %v", err)
	}
	if out.Round.WinnerID != nil {
		t.Fatalf("tie round has winner %d", *out.Round.WinnerID)
	}
	g := f.reload(t)
	if g.Player1Wins != 0 || g.Player2Wins != 0 {
		t.Fatalf("score changed on tie: %d-%d", g.Player1Wins, g.Player2Wins)
	}
	if len(f.rounds(t)) != 1 {
		t.Fatalf("tie round not persisted")
	}
}

func TestRecordRoundOnFinishedGameIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.engine.RecordRound(ctx, f.game.ID, domain.MoveRock, domain.MoveScissors); err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
	}

	_, err := f.engine.RecordRound(ctx, f.game.ID, domain.MovePaper, domain.MoveRock)
	if !errors.Is(err, ErrGameAlreadyFinished) {
		t.Fatalf("fourth round error = %v; want ErrGameAlreadyFinished", err)
	}
	if _, err := f.engine.RecordPlaceholderRound(ctx, f.game.ID); !errors.Is(err, ErrGameAlreadyFinished) {
		t.Fatalf("placeholder on finished game error = %v; want ErrGameAlreadyFinished", err)
	}

	g := f.reload(t)
	if g.Player1Wins != 3 || g.Player2Wins != 0 {
		t.Fatalf("score changed after finish: %d-%d", g.Player1Wins, g.Player2Wins)
	}
	if n := len(f.rounds(t)); n != 3 {
		t.Fatalf("rounds = %d; want 3", n)
	}
}

func TestRecordRoundMissingGame(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.RecordRound(context.Background(), 404, domain.MoveRock, domain.MovePaper)
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("error = %v; want ErrGameNotFound", err)
	}
	if _, err := f.engine.RecordPlaceholderRound(context.Background(), 404); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("placeholder error = %v; want ErrGameNotFound", err)
	}
}

func TestRecordRoundInvalidMoveWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.RecordRound(context.Background(), f.game.ID, "lizard", domain.MoveRock)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("error = %v; want ErrInvalidMove", err)
	}
	if n := len(f.rounds(t)); n != 0 {
		t.Fatalf("rounds = %d after invalid move; want 0", n)
	}
}

func TestPlaceholderRoundHasNoWinner(t *testing.T) {
	f := newFixture(t)

	out, err := f.engine.RecordPlaceholderRound(context.Background(), f.game.ID)
	if err != nil {
		t.Fatalf("RecordPlaceholderRound: %v", err)
	}
	if !out.Round.IsPlaceholder() || out.Round.WinnerID != nil {
		t.Fatalf("placeholder round = %+v", out.Round)
	}
	g := f.reload(t)
	if g.Player1Wins != 0 || g.Player2Wins != 0 || g.IsFinished {
		t.Fatalf("placeholder changed game: %+v", g)
	}
	if n := len(f.rounds(t)); n != 1 {
		t.Fatalf("rounds = %d; want 1", n)
	}
}

func TestTallyIgnoresFinishedGame(t *testing.T) {
	winner := int64(1)
	g := &domain.Game{Player1ID: 1, Player2ID: 2, Player1Wins: 3, IsFinished: true, WinnerID: &winner}

	tally(g, game.SidePlayer1)
	tally(g, game.SidePlayer2)

	if g.Player1Wins != 3 || g.Player2Wins != 0 {
		t.Fatalf("tally changed finished game: %d-%d", g.Player1Wins, g.Player2Wins)
	}
}

func TestScoreInvariantsOverRandomMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ctx := context.Background()

	for match := 0; match < 25; match++ {
		f := newFixture(t)
		prev := f.reload(t)

		for {
			m1 := domain.Moves[rng.Intn(3)]
			m2 := domain.Moves[rng.Intn(3)]

			out, err := f.engine.RecordRound(ctx, f.game.ID, m1, m2)
			if prev.IsFinished {
				if !errors.Is(err, ErrGameAlreadyFinished) {
					t.Fatalf("round after finish error = %v", err)
				}
				break
			}
			if err != nil {
				t.Fatalf("RecordRound: %v", err)
			}

			g := out.Game
			if g.Player1Wins < prev.Player1Wins || g.Player2Wins < prev.Player2Wins {
				t.Fatalf("counter decreased: %+v -> %+v", prev, g)
			}
			if g.Player1Wins > 3 || g.Player2Wins > 3 {
				t.Fatalf("counter above 3: %+v", g)
			}
			reached := g.Player1Wins == 3 || g.Player2Wins == 3
			if g.IsFinished != reached {
				t.Fatalf("finished=%v but score %d-%d", g.IsFinished, g.Player1Wins, g.Player2Wins)
			}
			if (g.WinnerID != nil) != g.IsFinished {
				t.Fatalf("winner set=%v but finished=%v", g.WinnerID != nil, g.IsFinished)
			}
			prev = g
		}
	}
}

func TestConcurrentRoundsStopAtThreeWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const submissions = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	wg.Add(submissions)
	for i := 0; i < submissions; i++ {
		go func() {
			defer wg.Done()
			_, err := f.engine.RecordRound(ctx, f.game.ID, domain.MoveRock, domain.MoveScissors)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrGameAlreadyFinished):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 3 || rejected != submissions-3 {
		t.Fatalf("accepted=%d rejected=%d; want 3/%d", ok, rejected, submissions-3)
	}
	g := f.reload(t)
	if g.Player1Wins != 3 {
		t.Fatalf("player_1_wins = %d; want 3", g.Player1Wins)
	}
	if n := len(f.rounds(t)); n != 3 {
		t.Fatalf("rounds = %d; want 3", n)
	}
}

// failingStore fails every game update inside a transaction.
type failingStore struct {
	*memory.Store
}

type failingTx struct {
	repository.MatchTx
}

var errUpdate = errors.New("update failed")

func (f failingTx) UpdateGame(ctx context.Context, g *domain.Game) error {
	return errUpdate
}

func (s failingStore) InTx(ctx context.Context, fn func(tx repository.MatchTx) error) error {
	return s.Store.InTx(ctx, func(tx repository.MatchTx) error {
		return fn(failingTx{tx})
	})
}

func TestRecordRoundIsAtomic(t *testing.T) {
	f := newFixture(t)
	engine := NewMatchEngine(failingStore{f.store}, f.store)

	_, err := engine.RecordRound(context.Background(), f.game.ID, domain.MoveRock, domain.MoveScissors)
	if !errors.Is(err, errUpdate) {
		t.Fatalf("error = %v; want wrapped errUpdate", err)
	}
	if n := len(f.rounds(t)); n != 0 {
		t.Fatalf("round persisted without game update: %d rounds", n)
	}
	if g := f.reload(t); g.Player1Wins != 0 {
		t.Fatalf("player_1_wins = %d; want 0", g.Player1Wins)
	}
}

func TestOnRoundListeners(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var got []*RoundOutcome
	f.engine.OnRound(func(o *RoundOutcome) { got = append(got, o) })

	if _, err := f.engine.RecordRound(ctx, f.game.ID, domain.MovePaper, domain.MoveRock); err != nil {
		t.Fatalf("RecordRound: %v", err)
	}
	if _, err := f.engine.RecordRound(ctx, 404, domain.MovePaper, domain.MoveRock); err == nil {
		t.Fatalf("expected error for missing game")
	}

	if len(got) != 1 {
		t.Fatalf("listener calls = %d; want 1", len(got))
	}
	if got[0].Side != game.SidePlayer1 {
		t.Fatalf("listener side = %s", got[0].Side)
	}
}

// vanishingStore reports the referenced player gone at insert time.
type vanishingStore struct {
	*memory.Store
}

func (s vanishingStore) CreateGame(ctx context.Context, g *domain.Game) error {
	return repository.ErrNotFound
}

func TestCreateGamePlayerRemovedBeforeInsert(t *testing.T) {
	f := newFixture(t)
	engine := NewMatchEngine(vanishingStore{f.store}, f.store)

	_, err := engine.CreateGame(context.Background(), f.game.Player1ID, f.game.Player2ID)
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("err = %v; want ErrPlayerNotFound", err)
	}
}
