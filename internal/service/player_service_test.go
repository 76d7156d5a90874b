package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rps_arena/internal/repository/memory"
)

func TestPlayerCreateTrimsName(t *testing.T) {
	s := NewPlayerService(memory.NewStore())

	p, err := s.Create(context.Background(), "  New Player ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "New Player" || p.ID == 0 {
		t.Fatalf("player = %+v", p)
	}
}

func TestPlayerCreateValidation(t *testing.T) {
	s := NewPlayerService(memory.NewStore())
	ctx := context.Background()

	for _, name := range []string{"", "   ", strings.Repeat("x", 101)} {
		if _, err := s.Create(ctx, name); !errors.Is(err, ErrInvalidPlayerName) {
			t.Fatalf("Create(%q) error = %v; want ErrInvalidPlayerName", name, err)
		}
	}

	if _, err := s.Create(ctx, "dup"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "dup"); !errors.Is(err, ErrPlayerNameTaken) {
		t.Fatalf("duplicate error = %v; want ErrPlayerNameTaken", err)
	}
}

func TestPlayerRename(t *testing.T) {
	s := NewPlayerService(memory.NewStore())
	ctx := context.Background()

	a, _ := s.Create(ctx, "a")
	if _, err := s.Create(ctx, "b"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Rename(ctx, a.ID, "alpha")
	if err != nil || got.Name != "alpha" {
		t.Fatalf("Rename = %+v, %v", got, err)
	}
	if _, err := s.Rename(ctx, a.ID, "b"); !errors.Is(err, ErrPlayerNameTaken) {
		t.Fatalf("rename to taken error = %v", err)
	}
	if _, err := s.Rename(ctx, 77, "z"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("rename missing error = %v", err)
	}
	if _, err := s.Get(ctx, 77); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("get missing error = %v", err)
	}
}
