package engine

import "github.com/kestrelchess/corvid/internal/position"

// qCheckCap is the depth at which quiescence stops generating quiet checks
// alongside captures, per §4.5.
const qCheckCap = -2

// qDepthCap is the terminal depth at which quiescence gives up extending
// and returns the static leaf evaluation regardless of tactics remaining.
const qDepthCap = -8

// Quiescence resolves captures (and, near the horizon, checks) before
// handing a leaf to the static evaluator, to avoid misjudging positions
// mid-exchange. It returns a fail-soft score from the side-to-move
// perspective: the returned value may lie outside [alpha, beta].
func Quiescence(e *Evaluator, alpha, beta, depth int) int {
	pos := e.Position()

	if pos.ComputeTerminalState() == position.Loss {
		return LossValue
	}
	if pos.ComputeTerminalState() == position.Draw {
		return DrawValue
	}

	inCheck := pos.InCheck()

	if !inCheck {
		standPat := e.RelativeEval()
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if depth <= qDepthCap {
		return e.RelativeEval()
	}

	var moves *position.MoveList
	if inCheck {
		// All moves considered: any evasion may be forced, not only captures.
		moves = pos.GenerateMoves(position.AllMoves)
	} else if depth > qCheckCap {
		moves = pos.GenerateMoves(position.CapturesAndChecks)
	} else {
		moves = pos.GenerateMoves(position.CapturesOnly)
	}

	scores := make([]int, moves.Len())
	kept := 0
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.IsCapture() {
			see := e.SEE(m)
			if see <= 0 && !inCheck {
				continue
			}
			scores[kept] = see
		} else {
			scores[kept] = 0
		}
		moves.Set(kept, m)
		kept++
	}

	best := alpha
	if inCheck {
		best = -Infinity
	}

	for i := 0; i < kept; i++ {
		pickBest := i
		for j := i + 1; j < kept; j++ {
			if scores[j] > scores[pickBest] {
				pickBest = j
			}
		}
		if pickBest != i {
			moves.Swap(i, pickBest)
			scores[i], scores[pickBest] = scores[pickBest], scores[i]
		}

		m := moves.Get(i)
		if err := e.Make(m); err != nil {
			continue
		}
		score := -Quiescence(e, -beta, -alpha, depth-1)
		e.Unmake()

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return best
}
