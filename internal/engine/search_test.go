package engine

import (
	"errors"
	"testing"

	"github.com/kestrelchess/corvid/internal/position"
)

// newTestSearcher builds a Searcher over fen at the standard §8 test
// configuration: depth 4, a freshly-cleared transposition table.
func newTestSearcher(t *testing.T, fen string) (*Searcher, *Evaluator) {
	t.Helper()
	pos, err := position.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	eval := NewEvaluator(pos)
	tt := NewTable(1) // sized in MB; comfortably holds the §8 capacity-10000 scenarios
	return NewSearcher(eval, tt, DepthLimit{Max: 4}), eval
}

func containsMove(best position.Move, candidates ...string) bool {
	s := best.String()
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

// evaluatorAfterLine replays a sequence of coordinate moves from the
// starting position and returns the resulting Evaluator, for scenarios §8
// specifies as "starting position after <moves>" rather than as a raw FEN.
func evaluatorAfterLine(t *testing.T, moves ...string) *Evaluator {
	t.Helper()
	e := NewEvaluator(position.NewPosition())
	for _, s := range moves {
		m, err := position.ParseMove(s, e.Position())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := e.Make(m); err != nil {
			t.Fatalf("Make(%q): %v", s, err)
		}
	}
	return e
}

// TestSearchMateScenarios runs §8's four direct-FEN forced-mate scenarios at
// search depth 4.
func TestSearchMateScenarios(t *testing.T) {
	cases := []struct {
		name       string
		fen        string
		candidates []string
	}{
		{
			name:       "queen sacrifice mate",
			fen:        "r2r2k1/5ppp/1N2p3/1n6/3Q4/2B5/5PPP/1R3RK1 w - - 0 1",
			candidates: []string{"d4g7"},
		},
		{
			name:       "rook deflection mate",
			fen:        "8/8/8/4Q3/8/6R1/2n1pkBK/8 w - - 0 1",
			candidates: []string{"g3d3"},
		},
		{
			name:       "bishop-queen battery mate",
			fen:        "8/7B/5Q2/6p1/6k1/8/5K2/8 w - - 0 1",
			candidates: []string{"f6h8", "f6f3"},
		},
		{
			name:       "knight fork into mate",
			fen:        "3qr2k/1b1p2pp/7N/3Q2b1/4P3/8/5PP1/6K1 w - - 0 1",
			candidates: []string{"d5g8"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			searcher, _ := newTestSearcher(t, c.fen)
			outcome, err := searcher.Search()
			if err != nil {
				t.Fatalf("Search: %v", err)
			}

			if !containsMove(outcome.BestMove, c.candidates...) {
				t.Errorf("best move = %s, want one of %v", outcome.BestMove, c.candidates)
			}
			if outcome.RelativeEval != WinValue {
				t.Errorf("relative_eval = %d, want WinValue (%d)", outcome.RelativeEval, WinValue)
			}
			if len(outcome.OptimalPath) > outcome.Depth {
				t.Errorf("optimal_path length %d exceeds depth_searched %d", len(outcome.OptimalPath), outcome.Depth)
			}
		})
	}
}

// TestSearchPrefersCastling replays §8 scenario 5's opening line
// (1.e4 e5 2.f4 exf4 3.Nf3 g5 4.Nc3 Nc6 5.g3 g4 6.Nh4 Nd4 7.Bc4 Be7) and
// checks the engine prefers castling.
func TestSearchPrefersCastling(t *testing.T) {
	e := evaluatorAfterLine(t,
		"e2e4", "e7e5",
		"f2f4", "e5f4",
		"g1f3", "g7g5",
		"b1c3", "b8c6",
		"g2g3", "g5g4",
		"f3h4", "c6d4",
		"f1c4", "f8e7",
	)
	tt := NewTable(1)
	searcher := NewSearcher(e, tt, DepthLimit{Max: 4})

	outcome, err := searcher.Search()
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !containsMove(outcome.BestMove, "e1g1") {
		t.Errorf("best move = %s, want e1g1 (castling)", outcome.BestMove)
	}
	if len(outcome.OptimalPath) > outcome.Depth {
		t.Errorf("optimal_path length %d exceeds depth_searched %d", len(outcome.OptimalPath), outcome.Depth)
	}
}

// TestSearchPromotesToWinMaterial replays §8 scenario 6's opening line
// (1.d4 d5 2.e3 Nf6 3.c4 c6 4.Nc3 e6 5.Bd3 dxc4 6.Bxc4 b5 7.Be2 Bd6 8.e4 b4
// 9.e5 bxc3 10.exf6 O-O 11.fxg7 cxb2) and checks the engine finds the
// rook-capturing promotion.
func TestSearchPromotesToWinMaterial(t *testing.T) {
	e := evaluatorAfterLine(t,
		"d2d4", "d7d5",
		"e2e3", "g8f6",
		"c2c4", "c7c6",
		"b1c3", "e7e6",
		"f1d3", "d5c4",
		"d3c4", "b7b5",
		"c4e2", "f8d6",
		"e3e4", "b5b4",
		"e4e5", "b4c3",
		"e5f6", "e8g8",
		"f6g7", "c3b2",
	)
	tt := NewTable(1)
	searcher := NewSearcher(e, tt, DepthLimit{Max: 4})

	outcome, err := searcher.Search()
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !containsMove(outcome.BestMove, "g7f8q", "g7f8r") {
		t.Errorf("best move = %s, want g7f8q or g7f8r", outcome.BestMove)
	}
	if len(outcome.OptimalPath) > outcome.Depth {
		t.Errorf("optimal_path length %d exceeds depth_searched %d", len(outcome.OptimalPath), outcome.Depth)
	}
}

// TestSearchMateInTwo checks §8's mate-in-N invariant directly: at a depth
// sufficient to find it, a forced mate scores WinValue and the first path
// element is the mating move.
func TestSearchMateInTwo(t *testing.T) {
	// White mates in 2: 1.Qb8+ Rxb8 2.Rxb8#.
	pos, err := position.ParseFEN("r5k1/5ppp/8/8/8/8/1Q6/1R5K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	eval := NewEvaluator(pos)
	tt := NewTable(1)
	searcher := NewSearcher(eval, tt, DepthLimit{Max: 4})

	outcome, err := searcher.Search()
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if outcome.RelativeEval != WinValue {
		t.Fatalf("relative_eval = %d, want WinValue (%d)", outcome.RelativeEval, WinValue)
	}
	if len(outcome.OptimalPath) == 0 {
		t.Fatal("optimal_path is empty, want at least the mating move")
	}
	if outcome.OptimalPath[0] != outcome.BestMove {
		t.Errorf("optimal_path[0] = %s, want it to match best_move %s", outcome.OptimalPath[0], outcome.BestMove)
	}
}

// TestSearchNoLegalMovesAtRoot checks §7's third error kind: searching a
// position with no legal move (here, checkmate) reports ErrNoLegalMoves.
func TestSearchNoLegalMovesAtRoot(t *testing.T) {
	pos, err := position.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	eval := NewEvaluator(pos)
	tt := NewTable(1)
	searcher := NewSearcher(eval, tt, DepthLimit{Max: 4})

	_, err = searcher.Search()
	if !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("Search on a checkmated position returned %v, want ErrNoLegalMoves", err)
	}
}
