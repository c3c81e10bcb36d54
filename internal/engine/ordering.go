package engine

import "github.com/kestrelchess/corvid/internal/position"

// Category is the move-ordering bucket a move falls into per §4.6. Moves are
// never scored by category directly — the numeric score already encodes
// category precedence — but the type documents the four mutually exclusive
// cases.
type Category uint8

const (
	CategoryGoodExchange Category = iota
	CategorySpecial
	CategoryPositional
	CategoryBadExchange
)

const (
	goodExchangeBase = 30000
	specialScore     = 20000
	positionalBase   = 10000
)

// ScoreMove returns a move's ordering score: GoodExchange and BadExchange
// captures score by SEE, Special moves (castle/en-passant/promotion) score a
// flat bonus ahead of ordinary quiet moves, and quiet moves score by the
// piece-square delta unless a cheaper enemy piece attacks their destination.
func ScoreMove(pos *position.Position, m position.Move) int {
	switch m.Kind {
	case position.Castle, position.Enpassant, position.Promote:
		return specialScore
	}

	if m.IsCapture() {
		see := StaticExchangeEval(pos, m, DefaultSEEValues)
		if see > 0 {
			return goodExchangeBase + see
		}
		return see
	}

	movingValue := MaterialMidValue(m.Moving.Class())
	if cheapest, ok := cheapestAttackerValue(pos, m.Dest, pos.SideToMove.Other()); ok && cheapest < movingValue {
		return -(movingValue - cheapest)
	}

	delta := pos.SideToMove.Parity() * (PSQTMid(m.Moving, m.Dest) - PSQTMid(m.Moving, m.From))
	return positionalBase + delta
}

// cheapestAttackerValue returns the material value of the least valuable
// side piece attacking sq, scanning classes cheapest-first so the first hit
// is automatically the minimum.
func cheapestAttackerValue(pos *position.Position, sq position.Square, side position.Side) (int, bool) {
	attackers := pos.AttackersBySide(sq, side, pos.AllOccupied)
	if attackers == 0 {
		return 0, false
	}
	for c := position.Pawn; c <= position.King; c++ {
		if attackers&pos.Pieces[side][c] != 0 {
			return MaterialMidValue(c), true
		}
	}
	return 0, false
}

// ScoreMoves scores every move in the list.
func ScoreMoves(pos *position.Position, moves *position.MoveList) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = ScoreMove(pos, moves.Get(i))
	}
	return scores
}

// SortMoves sorts moves by descending score. A selection sort is sufficient
// given chess's modest branching factor (rarely above ~50).
func SortMoves(moves *position.MoveList, scores []int) {
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves.Swap(i, best)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best-scoring move at or after index and swaps it into
// index, enabling lazy "sort only as far as search gets" ordering.
func PickMove(moves *position.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// PromoteToFront moves hint to index 0 if present, by swapping it with the
// move that was there.
// Called once for the transposition-table hint and once for the
// principal-variation hint, in that order, so that "last-found wins" per
// §4.6 leaves the PV hint at the very front when both are present.
func PromoteToFront(moves *position.MoveList, scores []int, hint position.Move) {
	if hint.Kind == position.Null {
		return
	}
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == hint {
			if i != 0 {
				moves.Swap(0, i)
				scores[0], scores[i] = scores[i], scores[0]
			}
			return
		}
	}
}
