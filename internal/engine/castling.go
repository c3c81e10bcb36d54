package engine

import "github.com/kestrelchess/corvid/internal/position"

// defaultCastlingPenalty is applied per missing castling right to a side
// that has not yet castled, per §4.3.3 (70-100 range; 70 matches the
// teacher's default).
const defaultCastlingPenalty = 70

// CastlingFacet tracks whether each side has castled and penalizes a side
// that hasn't castled in proportion to the castling rights it has lost.
type CastlingFacet struct {
	castled [2]bool
	penalty int
}

// NewCastlingFacet builds a castling-incentive facet with the default penalty.
func NewCastlingFacet() *CastlingFacet {
	return &CastlingFacet{penalty: defaultCastlingPenalty}
}

func (f *CastlingFacet) Init(pos *position.Position) {
	f.castled[position.White] = false
	f.castled[position.Black] = false
}

func (f *CastlingFacet) rightsRemaining(pos *position.Position, side position.Side) int {
	n := 0
	if pos.CastlingRights.CanCastle(side, true) {
		n++
	}
	if pos.CastlingRights.CanCastle(side, false) {
		n++
	}
	return n
}

func (f *CastlingFacet) penaltyFor(side position.Side, rightsLeft int) int {
	if f.castled[side] {
		return 0
	}
	return (2 - rightsLeft) * f.penalty
}

func (f *CastlingFacet) Make(m position.Move, pos *position.Position) {
	if m.Kind == position.Castle {
		f.castled[m.Corner.Side()] = true
	}
}

func (f *CastlingFacet) Unmake(m position.Move, pos *position.Position) {
	if m.Kind == position.Castle {
		f.castled[m.Corner.Side()] = false
	}
}

func (f *CastlingFacet) Score(pos *position.Position) Evaluation {
	whitePenalty := f.penaltyFor(position.White, f.rightsRemaining(pos, position.White))
	blackPenalty := f.penaltyFor(position.Black, f.rightsRemaining(pos, position.Black))
	return SingleEval(blackPenalty - whitePenalty)
}
