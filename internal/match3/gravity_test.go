package match3_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/gemfall/internal/match3"
)

func constant(t match3.GemType) match3.Generator {
	return func(match3.Cell) match3.GemType { return t }
}

func TestResolveCompactsColumn(t *testing.T) {
	// Bottom to top: A . B . .
	g := match3.MustParseGrid(
		".",
		".",
		"B",
		".",
		"A",
	)

	out, events := match3.Resolve(g, constant(3))

	want := []string{"C", "C", "C", "B", "A"}
	for i, row := range out.Rows() {
		if row != want[i] {
			t.Fatalf("Rows() = %v, expected %v", out.Rows(), want)
		}
	}

	expected := []match3.FallEvent{
		{Type: 2, From: match3.C(0, 2), To: match3.C(0, 1)},
		{Type: 3, From: match3.C(0, 5), To: match3.C(0, 2), Spawned: true},
		{Type: 3, From: match3.C(0, 6), To: match3.C(0, 3), Spawned: true},
		{Type: 3, From: match3.C(0, 7), To: match3.C(0, 4), Spawned: true},
	}
	if len(events) != len(expected) {
		t.Fatalf("got %d events %v, expected %d", len(events), events, len(expected))
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d = %+v, expected %+v", i, events[i], expected[i])
		}
	}

	// Input untouched
	if g.String() != ".\n.\nB\n.\nA" {
		t.Errorf("Resolve() mutated its input: %q", g.String())
	}
}

func TestResolveColumnsAreIndependent(t *testing.T) {
	g := match3.MustParseGrid(
		"AB.",
		".BC",
		"A.C",
	)

	out, _ := match3.Resolve(g, constant(4))

	want := []string{"DDD", "ABC", "ABC"}
	got := out.Rows()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rows() = %v, expected %v", got, want)
		}
	}
}

func TestResolveNoHolesIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []match3.GemType{1, 2, 3, 4, 5}

	for i := 0; i < 20; i++ {
		g, _ := match3.NewGrid(6, 6, match3.RandomGenerator(rng, types))

		out, events := match3.Resolve(g, constant(1))
		if !out.Equal(g) {
			t.Fatalf("iteration %d: full grid changed", i)
		}
		if len(events) != 0 {
			t.Fatalf("iteration %d: expected no events, got %d", i, len(events))
		}
	}
}

func TestResolveSpawnsFromAboveBoard(t *testing.T) {
	g := match3.MustParseGrid(
		"...",
		"...",
	)

	out, events := match3.Resolve(g, constant(2))
	if !out.Full() {
		t.Fatal("expected a full board after refill")
	}
	for _, e := range events {
		if !e.Spawned {
			t.Errorf("event %+v should be a spawn", e)
		}
		if e.From.Y < out.Height() || e.From.X != e.To.X {
			t.Errorf("spawn %+v should start above its column", e)
		}
	}
	if len(events) != 6 {
		t.Errorf("expected 6 spawns, got %d", len(events))
	}
}
