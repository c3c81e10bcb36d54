package engine

import "github.com/kestrelchess/corvid/internal/position"

// Facet is an independent, incrementally-maintained evaluation component
// (§2 item 3). Init seeds state from a from-scratch position; Make/Unmake
// update that state for one applied move, in lockstep with the position's
// own make/unmake; Score returns the facet's current contribution without
// recomputing it.
type Facet interface {
	Init(pos *position.Position)
	Make(m position.Move, pos *position.Position)
	Unmake(m position.Move, pos *position.Position)
	Score(pos *position.Position) Evaluation
}

// phaseValue is P_phase indexed by Class: the per-piece contribution to the
// game-phase counter, zero for pawns and kings.
var phaseValue = [6]int{0, 1, 1, 2, 4, 0}

// TotalPhase is TOTAL_PHASE from §3: the summed phase weight of every
// non-king piece in the starting position, and so the phase counter's value
// once all of them are gone (the counter is 0 in the starting position).
const TotalPhase = 16*0 + 4*(1+1+2) + 2*4

// PhaseWeight converts a phase counter into the [0,256] interpolation weight
// w used by Evaluation.Resolve, where 256 means fully-endgame.
func PhaseWeight(phase int) int {
	return (phase*256 + TotalPhase/2) / TotalPhase
}

// computePhase derives the phase counter directly from piece counts, per
// §3's invariant: TOTAL_PHASE minus the sum of P_phase(class)*count(class)
// over non-king pieces on the board.
func computePhase(pos *position.Position) int {
	phase := TotalPhase
	for side := position.White; side <= position.Black; side++ {
		for c := position.Knight; c <= position.Queen; c++ {
			phase -= pos.Pieces[side][c].PopCount() * phaseValue[c]
		}
	}
	if phase < 0 {
		phase = 0
	}
	return phase
}
