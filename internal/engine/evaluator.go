package engine

import "github.com/kestrelchess/corvid/internal/position"

// standardStartKey is the Zobrist key of the standard starting position,
// computed once so NewEvaluator can recognize it without re-parsing a FEN.
var standardStartKey = position.NewPosition().Key

// Evaluator wraps a position together with the set of facets that
// incrementally maintain its evaluation, per §2 item 4 and §4.1. It forwards
// every make/unmake to its facets before (make) or after (unmake) mutating
// the wrapped position, so a facet always observes the position it expects.
type Evaluator struct {
	pos    *position.Position
	phase  int
	facets []Facet
}

// NewEvaluator builds an Evaluator over pos. Per §4.4, a position recognized
// as the standard starting position installs the full facet set; any other
// starting point installs only the facets that don't depend on having
// tracked the game from its opening moves (material, piece-square tables,
// and pawn structure, which are pure functions of the current position).
func NewEvaluator(pos *position.Position) *Evaluator {
	e := &Evaluator{pos: pos}
	if pos.Key == standardStartKey {
		e.facets = []Facet{
			NewMaterialFacet(),
			NewPSQTFacet(),
			NewCastlingFacet(),
			NewDevelopmentFacet(),
			NewKnightRimFacet(),
			NewPawnStructureFacet(4),
		}
	} else {
		e.facets = []Facet{
			NewMaterialFacet(),
			NewPSQTFacet(),
			NewPawnStructureFacet(4),
		}
	}
	e.phase = computePhase(pos)
	for _, f := range e.facets {
		f.Init(pos)
	}
	return e
}

// Position returns the wrapped position.
func (e *Evaluator) Position() *position.Position {
	return e.pos
}

// Make applies m: every facet observes the pre-move position first, then m
// is applied to the position itself, per §4.1's ordering.
func (e *Evaluator) Make(m position.Move) error {
	for _, f := range e.facets {
		f.Make(m, e.pos)
	}
	if err := e.pos.Make(m); err != nil {
		for _, f := range e.facets {
			f.Unmake(m, e.pos)
		}
		return err
	}
	e.phase = computePhase(e.pos)
	return nil
}

// Unmake pops the most recently made move, then lets every facet observe
// the still-unwound position to reverse its own update.
func (e *Evaluator) Unmake() (position.Move, error) {
	m, err := e.pos.Unmake()
	if err != nil {
		return m, err
	}
	for _, f := range e.facets {
		f.Unmake(m, e.pos)
	}
	e.phase = computePhase(e.pos)
	return m, nil
}

// RelativeEval returns the position's evaluation from the perspective of the
// side to move, per §4.1: LossValue/DrawValue at a terminal node, otherwise
// the phase-interpolated sum of every facet's contribution, oriented by
// side-to-move parity.
func (e *Evaluator) RelativeEval() int {
	switch e.pos.ComputeTerminalState() {
	case position.Loss:
		return LossValue
	case position.Draw:
		return DrawValue
	}

	w := PhaseWeight(e.phase)
	total := 0
	for _, f := range e.facets {
		total += f.Score(e.pos).Resolve(w)
	}
	return e.pos.SideToMove.Parity() * total
}

// SEE delegates to the static exchange evaluator using the evaluator's own
// mid-game material scale, per §4.2.
func (e *Evaluator) SEE(m position.Move) int {
	return StaticExchangeEval(e.pos, m, DefaultSEEValues)
}

var nullMove = position.Move{Kind: position.Null}

// MakeNull passes the turn for null-move pruning, forwarding the null move
// to every facet so ply-indexed facets (development, knight-rim) keep their
// move counters in step with the position.
func (e *Evaluator) MakeNull() position.NullMoveUndo {
	for _, f := range e.facets {
		f.Make(nullMove, e.pos)
	}
	undo := e.pos.MakeNull()
	e.phase = computePhase(e.pos)
	return undo
}

// UnmakeNull reverses MakeNull.
func (e *Evaluator) UnmakeNull(undo position.NullMoveUndo) {
	e.pos.UnmakeNull(undo)
	for _, f := range e.facets {
		f.Unmake(nullMove, e.pos)
	}
	e.phase = computePhase(e.pos)
}
