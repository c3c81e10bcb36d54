package engine

import (
	"math"

	"github.com/kestrelchess/corvid/internal/position"
)

const (
	defaultUndevelopedCost   = 10
	defaultMoveIndexDivisor  = 10
	defaultDevelopmentCap    = 300
)

// developmentPiece indexes the six pieces development tracks per side.
type developmentPiece int

const (
	devEPawn developmentPiece = iota
	devDPawn
	devBKnight
	devGKnight
	devCBishop
	devFBishop
	developmentPieceCount
)

var developmentStartLocs = map[position.Square]struct {
	side  position.Side
	piece developmentPiece
}{
	position.E2: {position.White, devEPawn},
	position.E7: {position.Black, devEPawn},
	position.D2: {position.White, devDPawn},
	position.D7: {position.Black, devDPawn},
	position.B1: {position.White, devBKnight},
	position.B8: {position.Black, devBKnight},
	position.G1: {position.White, devGKnight},
	position.G8: {position.Black, devGKnight},
	position.C1: {position.White, devCBishop},
	position.C8: {position.Black, devCBishop},
	position.F1: {position.White, devFBishop},
	position.F8: {position.Black, devFBishop},
}

type developmentRecord struct {
	set       bool
	moveIndex int
}

// DevelopmentFacet penalizes a side for leaving its minor pieces and central
// pawns undeveloped as the game goes on. Only valid from the standard
// starting position, per §4.4.
type DevelopmentFacet struct {
	moveIndex   int
	piecesMoved [2][developmentPieceCount]developmentRecord

	undevelopedCost  int
	moveIndexDivisor int
	maxPenalty       int
}

// NewDevelopmentFacet builds a development facet with the default parameters.
func NewDevelopmentFacet() *DevelopmentFacet {
	return &DevelopmentFacet{
		undevelopedCost:  defaultUndevelopedCost,
		moveIndexDivisor: defaultMoveIndexDivisor,
		maxPenalty:       defaultDevelopmentCap,
	}
}

func (f *DevelopmentFacet) Init(pos *position.Position) {
	f.moveIndex = 0
	f.piecesMoved = [2][developmentPieceCount]developmentRecord{}
}

func (f *DevelopmentFacet) matchingPiece(moveCount int) (position.Side, developmentPiece, bool) {
	for side := position.White; side <= position.Black; side++ {
		for p := developmentPiece(0); p < developmentPieceCount; p++ {
			rec := f.piecesMoved[side][p]
			if rec.set && rec.moveIndex == moveCount {
				return side, p, true
			}
		}
	}
	return position.NoSide, 0, false
}

func (f *DevelopmentFacet) penalty(side position.Side) int {
	undevelopedCount := 0
	for p := developmentPiece(0); p < developmentPieceCount; p++ {
		if !f.piecesMoved[side][p].set {
			undevelopedCount++
		}
	}
	moveIndexMult := math.Exp2(float64(f.moveIndex) / float64(f.moveIndexDivisor))
	penalty := int(math.Round(moveIndexMult * float64(undevelopedCount) * float64(f.undevelopedCost)))
	if penalty > f.maxPenalty {
		return f.maxPenalty
	}
	return penalty
}

func (f *DevelopmentFacet) Make(m position.Move, pos *position.Position) {
	if m.Kind == position.Normal {
		if loc, ok := developmentStartLocs[m.From]; ok {
			if !f.piecesMoved[loc.side][loc.piece].set {
				f.piecesMoved[loc.side][loc.piece] = developmentRecord{set: true, moveIndex: f.moveIndex}
			}
		}
	}
	f.moveIndex++
}

func (f *DevelopmentFacet) Unmake(m position.Move, pos *position.Position) {
	f.moveIndex--
	if side, piece, ok := f.matchingPiece(f.moveIndex); ok {
		f.piecesMoved[side][piece] = developmentRecord{}
	}
}

func (f *DevelopmentFacet) Score(pos *position.Position) Evaluation {
	return SingleEval(f.penalty(position.Black) - f.penalty(position.White))
}
