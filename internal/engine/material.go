package engine

import "github.com/kestrelchess/corvid/internal/position"

// Material mid/end values per §4.3.1, indexed by Class. King carries a large
// nominal value so comparisons that scan "cheapest attacker" never mistake a
// king for a cheap piece.
var materialMid = [6]int{200, 782, 830, 1289, 2529, 100000}
var materialEnd = [6]int{293, 865, 918, 1378, 2687, 100000}

// MaterialMidValue returns the midgame value of a piece class.
func MaterialMidValue(c position.Class) int {
	return materialMid[c]
}

// MaterialEndValue returns the endgame value of a piece class.
func MaterialEndValue(c position.Class) int {
	return materialEnd[c]
}

// MaterialFacet tracks white-minus-black material in white-centric
// (mid, end) form, updated incrementally on every make/unmake.
type MaterialFacet struct {
	mid int
	end int
}

// NewMaterialFacet builds an uninitialized material facet; call Init before use.
func NewMaterialFacet() *MaterialFacet {
	return &MaterialFacet{}
}

func (f *MaterialFacet) Init(pos *position.Position) {
	f.mid, f.end = 0, 0
	for side := position.White; side <= position.Black; side++ {
		parity := side.Parity()
		for c := position.Pawn; c < position.King; c++ {
			count := pos.Pieces[side][c].PopCount()
			f.mid += parity * count * materialMid[c]
			f.end += parity * count * materialEnd[c]
		}
	}
}

func (f *MaterialFacet) Make(m position.Move, pos *position.Position) {
	if m.Kind == position.Null {
		return
	}
	parity := m.Moving.Side().Parity()

	if m.IsCapture() {
		capturedClass := m.Capture.Class()
		// The captured piece belongs to the non-mover, so removing it moves
		// the white-minus-black score in the mover's favor.
		f.mid += parity * materialMid[capturedClass]
		f.end += parity * materialEnd[capturedClass]
	}

	if m.Kind == position.Promote {
		f.mid += parity * (materialMid[m.Promoted.Class()] - materialMid[position.Pawn])
		f.end += parity * (materialEnd[m.Promoted.Class()] - materialEnd[position.Pawn])
	}
}

func (f *MaterialFacet) Unmake(m position.Move, pos *position.Position) {
	if m.Kind == position.Null {
		return
	}
	parity := m.Moving.Side().Parity()

	if m.Kind == position.Promote {
		f.mid -= parity * (materialMid[m.Promoted.Class()] - materialMid[position.Pawn])
		f.end -= parity * (materialEnd[m.Promoted.Class()] - materialEnd[position.Pawn])
	}

	if m.IsCapture() {
		capturedClass := m.Capture.Class()
		f.mid -= parity * materialMid[capturedClass]
		f.end -= parity * materialEnd[capturedClass]
	}
}

func (f *MaterialFacet) Score(pos *position.Position) Evaluation {
	return PhasedEval(f.mid, f.end)
}
