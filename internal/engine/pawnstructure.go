package engine

import "github.com/kestrelchess/corvid/internal/position"

// passerRankBonus is indexed by a pawn's advancement from its own second
// rank (0 = second rank, 5 = seventh rank, about to promote), per §4.3.6.
var passerRankBonusMid = [6]int{0, 10, 20, 40, 80, 160}
var passerRankBonusEnd = [6]int{0, 10, 20, 60, 100, 200}

const (
	connectedPasserBonusMid = 60
	connectedPasserBonusEnd = 110
)

// PawnStructureFacet evaluates passed pawns, caching the result per distinct
// pair of pawn bitboards. make/unmake are no-ops: the score is a pure
// function of the current pawn placement.
type PawnStructureFacet struct {
	cache *PawnCache
}

// NewPawnStructureFacet builds a pawn-structure facet backed by a cache of
// the given size in megabytes.
func NewPawnStructureFacet(cacheSizeMB int) *PawnStructureFacet {
	return &PawnStructureFacet{cache: NewPawnCache(cacheSizeMB)}
}

func (f *PawnStructureFacet) Init(pos *position.Position) {}

func (f *PawnStructureFacet) Make(m position.Move, pos *position.Position) {}

func (f *PawnStructureFacet) Unmake(m position.Move, pos *position.Position) {}

func (f *PawnStructureFacet) Score(pos *position.Position) Evaluation {
	whites := pos.Pieces[position.White][position.Pawn]
	blacks := pos.Pieces[position.Black][position.Pawn]
	key := PawnKey(whites, blacks)

	if mid, end, ok := f.cache.Probe(key); ok {
		return PhasedEval(mid, end)
	}

	mid, end := evaluatePassedPawns(whites, blacks)
	f.cache.Store(key, mid, end)
	return PhasedEval(mid, end)
}

// isPassedPawn reports whether the pawn at sq has no enemy pawn on its file
// or either adjacent file, at or ahead of its rank.
func isPassedPawn(sq position.Square, side position.Side, enemyPawns position.Bitboard) bool {
	file := sq.File()
	var fileMask position.Bitboard
	fileMask |= position.FileMask[file]
	if file > 0 {
		fileMask |= position.FileMask[file-1]
	}
	if file < 7 {
		fileMask |= position.FileMask[file+1]
	}

	var frontMask position.Bitboard
	if side == position.White {
		frontMask = position.RankMask[sq.Rank()].NorthFill()
	} else {
		frontMask = position.RankMask[sq.Rank()].SouthFill()
	}

	return enemyPawns&fileMask&frontMask == 0
}

func findPassedPawns(whites, blacks position.Bitboard) (whitePassers, blackPassers position.Bitboard) {
	for bb := whites; bb != 0; {
		sq := bb.PopLSB()
		if isPassedPawn(sq, position.White, blacks) {
			whitePassers = whitePassers.Set(sq)
		}
	}
	for bb := blacks; bb != 0; {
		sq := bb.PopLSB()
		if isPassedPawn(sq, position.Black, whites) {
			blackPassers = blackPassers.Set(sq)
		}
	}
	return whitePassers, blackPassers
}

func evaluatePassedPawns(whites, blacks position.Bitboard) (mid, end int) {
	whitePassers, blackPassers := findPassedPawns(whites, blacks)

	for rank := 1; rank < 7; rank++ {
		rankMask := position.RankMask[rank]
		whiteCount := (whitePassers & rankMask).PopCount()
		blackCount := (blackPassers & rankMask).PopCount()
		whiteMid, whiteEnd := passerRankBonusMid[rank-1], passerRankBonusEnd[rank-1]
		blackMid, blackEnd := passerRankBonusMid[6-rank], passerRankBonusEnd[6-rank]
		mid += whiteCount*whiteMid - blackCount*blackMid
		end += whiteCount*whiteEnd - blackCount*blackEnd
	}

	for file := 0; file < 7; file++ {
		thisFile := position.FileMask[file]
		nextFile := position.FileMask[file+1]
		whiteConns := countConnections(thisFile&whitePassers, nextFile&whitePassers)
		blackConns := countConnections(thisFile&blackPassers, nextFile&blackPassers)
		mid += (whiteConns - blackConns) * connectedPasserBonusMid
		end += (whiteConns - blackConns) * connectedPasserBonusEnd
	}

	return mid, end
}

// countConnections counts pairs of passed pawns on adjacent files whose
// ranks differ by at most 1, per §4.3.6's connected-passer rule.
func countConnections(a, b position.Bitboard) int {
	count := 0
	for bbA := a; bbA != 0; {
		sqA := bbA.PopLSB()
		for bbB := b; bbB != 0; {
			sqB := bbB.PopLSB()
			diff := sqA.Rank() - sqB.Rank()
			if diff < 0 {
				diff = -diff
			}
			if diff <= 1 {
				count++
			}
		}
	}
	return count
}
