package engine

import (
	"encoding/json"
	"time"

	"github.com/kestrelchess/corvid/internal/position"
)

// SearchOutcome is the result of a completed (or iteratively-deepened)
// search, serialized per §6. Move is rendered in coordinate form by
// position.Move.String, which already produces the exact forms §6 calls
// for: "<from><to>[<promo>]" for Normal/Promote/Enpassant, and the king's
// own coordinate move for Castle.
type SearchOutcome struct {
	BestMove    position.Move
	RelativeEval int
	Depth       int
	Elapsed     time.Duration
	OptimalPath []position.Move
}

// outcomeJSON is the wire shape SearchOutcome marshals to; keeping it
// separate from SearchOutcome lets the in-memory type use Go-native field
// types (time.Duration, position.Move) while the JSON keys and value
// formats stay exactly as §6 specifies.
type outcomeJSON struct {
	BestMove             string   `json:"bestMove"`
	PositionEval         int      `json:"positionEval"`
	DepthSearched        int      `json:"depthSearched"`
	SearchDurationMillis int64    `json:"searchDurationMillis"`
	OptimalPath          []string `json:"optimalPath"`
}

// MarshalJSON renders the outcome with the exact keys §6 specifies.
func (o SearchOutcome) MarshalJSON() ([]byte, error) {
	path := make([]string, len(o.OptimalPath))
	for i, m := range o.OptimalPath {
		path[i] = m.String()
	}
	return json.Marshal(outcomeJSON{
		BestMove:             o.BestMove.String(),
		PositionEval:         o.RelativeEval,
		DepthSearched:        o.Depth,
		SearchDurationMillis: o.Elapsed.Milliseconds(),
		OptimalPath:          path,
	})
}
