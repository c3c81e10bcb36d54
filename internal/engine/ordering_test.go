package engine

import (
	"testing"

	"github.com/kestrelchess/corvid/internal/position"
)

// TestScoreMoveCategoryPrecedence checks §4.6's category ordering: good
// exchanges score above special moves, which score above positional quiet
// moves, which score above bad exchanges.
func TestScoreMoveCategoryPrecedence(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/8/8/3q4/4P3/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	goodExchange, err := position.ParseMove("e4d5", pos) // pawn takes undefended queen
	if err != nil {
		t.Fatal(err)
	}
	castle, err := position.ParseMove("e1g1", pos)
	if err != nil {
		t.Fatal(err)
	}
	quiet, err := position.ParseMove("a1b1", pos)
	if err != nil {
		t.Fatal(err)
	}

	goodScore := ScoreMove(pos, goodExchange)
	specialScoreVal := ScoreMove(pos, castle)
	quietScore := ScoreMove(pos, quiet)

	if goodScore <= specialScoreVal {
		t.Errorf("good exchange score %d should exceed special-move score %d", goodScore, specialScoreVal)
	}
	if specialScoreVal <= quietScore {
		t.Errorf("special-move score %d should exceed quiet-move score %d", specialScoreVal, quietScore)
	}
}

func TestSortMovesDescending(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/8/8/3q4/4P3/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := pos.GenerateMoves(position.AllMoves)
	scores := ScoreMoves(pos, moves)
	SortMoves(moves, scores)

	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1] {
			t.Fatalf("scores not descending at index %d: %d > %d", i, scores[i], scores[i-1])
		}
	}
}

func TestPromoteToFrontLastFoundWins(t *testing.T) {
	pos := position.NewPosition()
	moves := pos.GenerateMoves(position.AllMoves)
	scores := ScoreMoves(pos, moves)

	ttHint, err := position.ParseMove("e2e4", pos)
	if err != nil {
		t.Fatal(err)
	}
	pvHint, err := position.ParseMove("d2d4", pos)
	if err != nil {
		t.Fatal(err)
	}

	PromoteToFront(moves, scores, ttHint)
	PromoteToFront(moves, scores, pvHint)

	if moves.Get(0) != pvHint {
		t.Errorf("front move = %s, want the PV hint %s (last promoted wins)", moves.Get(0), pvHint)
	}
}
