package engine

import (
	"testing"

	"github.com/kestrelchess/corvid/internal/position"
)

// playLine applies a sequence of coordinate moves via e, returning the
// applied position.Move values for later unmaking.
func playLine(t *testing.T, e *Evaluator, moves ...string) []position.Move {
	t.Helper()
	applied := make([]position.Move, 0, len(moves))
	for _, s := range moves {
		m, err := position.ParseMove(s, e.Position())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := e.Make(m); err != nil {
			t.Fatalf("Make(%q): %v", s, err)
		}
		applied = append(applied, m)
	}
	return applied
}

// TestFacetStateMatchesFreshRecompute checks §8's invariant: after each
// make/unmake pair, a facet's incrementally-maintained state equals the
// state a fresh evaluator gets by recomputing from scratch on the same
// position.
func TestFacetStateMatchesFreshRecompute(t *testing.T) {
	lines := [][]string{
		{"e2e4"},
		{"e2e4", "e7e5"},
		{"e2e4", "e7e5", "g1f3"},
		{"e2e4", "e7e5", "g1f3", "b8c6"},
	}

	for _, line := range lines {
		e := NewEvaluator(position.NewPosition())
		applied := playLine(t, e, line...)

		fresh := NewEvaluator(e.Position())
		material := e.facets[0].(*MaterialFacet)
		freshMaterial := fresh.facets[0].(*MaterialFacet)
		if *material != *freshMaterial {
			t.Errorf("after %v: material facet = %+v, fresh recompute = %+v", line, *material, *freshMaterial)
		}

		psqt := e.facets[1].(*PSQTFacet)
		freshPSQT := fresh.facets[1].(*PSQTFacet)
		if *psqt != *freshPSQT {
			t.Errorf("after %v: psqt facet = %+v, fresh recompute = %+v", line, *psqt, *freshPSQT)
		}

		for i := len(applied) - 1; i >= 0; i-- {
			if _, err := e.Unmake(); err != nil {
				t.Fatalf("Unmake: %v", err)
			}
		}

		start := NewEvaluator(position.NewPosition())
		if m := e.facets[0].(*MaterialFacet); *m != *start.facets[0].(*MaterialFacet) {
			t.Errorf("after unwinding %v: material facet = %+v, want starting state %+v", line, *m, *start.facets[0].(*MaterialFacet))
		}
	}
}

// TestRelativeEvalMirrorSymmetry checks §8's invariant:
// eval(p).relative_eval() == -eval(mirror(p)).relative_eval().
func TestRelativeEvalMirrorSymmetry(t *testing.T) {
	fens := []string{
		position.StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos, err := position.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		mpos, err := position.ParseFEN(mirrorFEN(fen))
		if err != nil {
			t.Fatalf("ParseFEN(mirror(%q)): %v", fen, err)
		}

		got := NewEvaluator(pos).RelativeEval()
		want := -NewEvaluator(mpos).RelativeEval()
		if got != want {
			t.Errorf("fen %q: relative_eval = %d, mirror relative_eval negated = %d", fen, got, want)
		}
	}
}

// TestEvaluatorSelectsFacetSetByStartingPosition checks §4.4: only the
// standard starting position installs the full (history-dependent) facet set.
func TestEvaluatorSelectsFacetSetByStartingPosition(t *testing.T) {
	std := NewEvaluator(position.NewPosition())
	if len(std.facets) != 6 {
		t.Errorf("standard start: got %d facets, want 6", len(std.facets))
	}

	pos, err := position.ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	other := NewEvaluator(pos)
	if len(other.facets) != 3 {
		t.Errorf("non-standard start: got %d facets, want 3", len(other.facets))
	}
}

// TestMakeNullRoundTrip checks that a null move leaves the position and
// every facet exactly as it found them.
func TestMakeNullRoundTrip(t *testing.T) {
	e := NewEvaluator(position.NewPosition())
	before := e.RelativeEval()
	beforeKey := e.Position().Key

	undo := e.MakeNull()
	e.UnmakeNull(undo)

	if e.Position().Key != beforeKey {
		t.Errorf("key after null round-trip = %d, want %d", e.Position().Key, beforeKey)
	}
	if got := e.RelativeEval(); got != before {
		t.Errorf("eval after null round-trip = %d, want %d", got, before)
	}
}
