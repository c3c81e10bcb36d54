package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kestrelchess/corvid/internal/position"
)

// TestSearchOutcomeMarshalJSON checks §6's exact wire shape: key names and
// move-rendering form (coordinate notation, promotion suffix).
func TestSearchOutcomeMarshalJSON(t *testing.T) {
	pos := position.NewPosition()
	best, err := position.ParseMove("e2e4", pos)
	if err != nil {
		t.Fatal(err)
	}

	outcome := SearchOutcome{
		BestMove:     best,
		RelativeEval: 37,
		Depth:        6,
		Elapsed:      1500 * time.Millisecond,
		OptimalPath:  []position.Move{best},
	}

	raw, err := outcome.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal produced JSON: %v", err)
	}

	if decoded["bestMove"] != "e2e4" {
		t.Errorf("bestMove = %v, want e2e4", decoded["bestMove"])
	}
	if decoded["positionEval"] != float64(37) {
		t.Errorf("positionEval = %v, want 37", decoded["positionEval"])
	}
	if decoded["depthSearched"] != float64(6) {
		t.Errorf("depthSearched = %v, want 6", decoded["depthSearched"])
	}
	if decoded["searchDurationMillis"] != float64(1500) {
		t.Errorf("searchDurationMillis = %v, want 1500", decoded["searchDurationMillis"])
	}
	path, ok := decoded["optimalPath"].([]any)
	if !ok || len(path) != 1 || path[0] != "e2e4" {
		t.Errorf("optimalPath = %v, want [\"e2e4\"]", decoded["optimalPath"])
	}
}

// TestSearchOutcomeMarshalJSONPromotion checks the promotion-suffix move
// rendering form, e.g. "e7e8q".
func TestSearchOutcomeMarshalJSONPromotion(t *testing.T) {
	pos, err := position.ParseFEN("8/4P3/8/8/8/8/8/4k2K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	promo, err := position.ParseMove("e7e8q", pos)
	if err != nil {
		t.Fatal(err)
	}

	outcome := SearchOutcome{BestMove: promo, RelativeEval: WinValue}
	raw, err := outcome.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["bestMove"] != "e7e8q" {
		t.Errorf("bestMove = %v, want e7e8q", decoded["bestMove"])
	}
}

// TestSearchOutcomeMarshalJSONCastle checks that a Castle move renders as
// the king's own coordinate move.
func TestSearchOutcomeMarshalJSONCastle(t *testing.T) {
	pos, err := position.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	castle, err := position.ParseMove("e1g1", pos)
	if err != nil {
		t.Fatal(err)
	}

	outcome := SearchOutcome{BestMove: castle}
	raw, err := outcome.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["bestMove"] != "e1g1" {
		t.Errorf("bestMove = %v, want e1g1 (king's own coordinate move)", decoded["bestMove"])
	}
}
