package game

import (
	"errors"
	"testing"

	"rps_arena/internal/domain"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		a, b domain.Move
		want Side
	}{
		{domain.MoveRock, domain.MoveScissors, SidePlayer1},
		{domain.MoveRock, domain.MovePaper, SidePlayer2},
		{domain.MovePaper, domain.MoveRock, SidePlayer1},
		{domain.MovePaper, domain.MoveScissors, SidePlayer2},
		{domain.MoveScissors, domain.MovePaper, SidePlayer1},
		{domain.MoveScissors, domain.MoveRock, SidePlayer2},
		{domain.MoveRock, domain.MoveRock, SideTie},
		{domain.MoveScissors, domain.MoveScissors, SideTie},
	}

	for _, tc := range cases {
		got, err := Resolve(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Resolve(%s,%s) unexpected error: %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%s,%s) = %s; want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestResolveSwapIsOpposite(t *testing.T) {
	for _, a := range domain.Moves {
		for _, b := range domain.Moves {
			ab, _ := Resolve(a, b)
			ba, _ := Resolve(b, a)

			if a == b {
				if ab != SideTie || ba != SideTie {
					t.Fatalf("equal moves %s should tie, got %s/%s", a, ab, ba)
				}
				continue
			}
			if ab == SideTie || ba == SideTie || ab == ba {
				t.Fatalf("Resolve(%s,%s)=%s and Resolve(%s,%s)=%s are not opposite", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestResolveInvalidMove(t *testing.T) {
	cases := [][2]domain.Move{
		{"lizard", domain.MoveRock},
		{domain.MovePaper, "spock"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := Resolve(tc[0], tc[1]); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("Resolve(%q,%q) error = %v; want ErrInvalidMove", tc[0], tc[1], err)
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("  Rock ")
	if err != nil || m != domain.MoveRock {
		t.Fatalf("ParseMove = %q, %v; want rock", m, err)
	}
	if _, err := ParseMove("stone"); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("ParseMove(stone) error = %v; want ErrInvalidMove", err)
	}
}
