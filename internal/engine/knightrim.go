package engine

import "github.com/kestrelchess/corvid/internal/position"

const defaultKnightRimPenalty = 80

// knightStart identifies which of a side's two knights starts on a given
// square, so the facet can key its per-knight first-move record.
type knightStart struct {
	side  position.Side
	slot  int // 0 = b-knight, 1 = g-knight
}

var knightStartLocs = map[position.Square]knightStart{
	position.B1: {position.White, 0},
	position.G1: {position.White, 1},
	position.B8: {position.Black, 0},
	position.G8: {position.Black, 1},
}

type knightFirstMove struct {
	set       bool
	moveIndex int
	dest      position.Square
}

// KnightRimFacet penalizes a side whose queenside or kingside knight's first
// move lands on the board rim (files a/h, ranks 1/8).
type KnightRimFacet struct {
	penalty   int
	firstMove [2][2]knightFirstMove // [side][slot]
	moveIndex int
}

// NewKnightRimFacet builds a knight-rim facet with the default penalty.
func NewKnightRimFacet() *KnightRimFacet {
	return &KnightRimFacet{penalty: defaultKnightRimPenalty}
}

func (f *KnightRimFacet) Init(pos *position.Position) {
	f.firstMove = [2][2]knightFirstMove{}
	f.moveIndex = 0
}

func isRimSquare(sq position.Square) bool {
	file, rank := sq.File(), sq.Rank()
	return file == 0 || file == 7 || rank == 0 || rank == 7
}

func (f *KnightRimFacet) patternCount(side position.Side) int {
	n := 0
	for slot := 0; slot < 2; slot++ {
		fm := f.firstMove[side][slot]
		if fm.set && isRimSquare(fm.dest) {
			n++
		}
	}
	return n
}

func (f *KnightRimFacet) Make(m position.Move, pos *position.Position) {
	if m.Kind == position.Normal {
		if start, ok := knightStartLocs[m.From]; ok {
			if !f.firstMove[start.side][start.slot].set {
				f.firstMove[start.side][start.slot] = knightFirstMove{set: true, moveIndex: f.moveIndex, dest: m.Dest}
			}
		}
	}
	f.moveIndex++
}

func (f *KnightRimFacet) Unmake(m position.Move, pos *position.Position) {
	f.moveIndex--
	if m.Kind == position.Normal {
		if start, ok := knightStartLocs[m.From]; ok {
			fm := f.firstMove[start.side][start.slot]
			if fm.set && fm.moveIndex == f.moveIndex {
				f.firstMove[start.side][start.slot] = knightFirstMove{}
			}
		}
	}
}

func (f *KnightRimFacet) Score(pos *position.Position) Evaluation {
	return SingleEval(f.penalty * (f.patternCount(position.Black) - f.patternCount(position.White)))
}
