package engine

import (
	"errors"
	"time"

	"github.com/kestrelchess/corvid/internal/position"
)

// ErrSearchTerminated signals that the SearchEnd predicate fired mid-
// recursion; it is control flow, not a bug, and the iterative-deepening
// driver catches it and falls back to the previous iteration's result.
var ErrSearchTerminated = errors.New("engine: search terminated")

// ErrNoLegalMoves is returned when the root position has no legal move to
// search, whether it is checkmate or stalemate; Search checks this before
// its first iteration.
var ErrNoLegalMoves = errors.New("engine: no legal moves at root")

// Result is the {score, path} pair a Negascout call returns: score is
// relative to the side to move at the node the call was made for, and path
// is the sequence of moves from that node to the leaf the score came from.
type Result struct {
	Score int
	Path  []position.Move
}

// Searcher runs iterative-deepening Negascout over an Evaluator, using a
// caller-owned transposition table and a caller-supplied termination
// predicate. One Searcher is used for one top-level search call; it is not
// safe for concurrent use, matching §5's single-threaded model.
type Searcher struct {
	eval *Evaluator
	tt   *Table
	end  SearchEnd

	start              time.Time
	nodes              uint64
	iterationDepth     int
	rootPV             []position.Move
	allowTTEarlyReturn bool
}

// NewSearcher builds a Searcher over eval, using tt for transposition
// lookups and end to decide when to stop.
func NewSearcher(eval *Evaluator, tt *Table, end SearchEnd) *Searcher {
	return &Searcher{eval: eval, tt: tt, end: end, allowTTEarlyReturn: true}
}

// Nodes returns the number of nodes visited by the most recent Search call.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search runs iterative deepening from depth 1 up to MaxPly, stopping when
// end fires or the depth cap is reached, per §4.8's outer loop. It returns
// the last fully-completed iteration's outcome.
func (s *Searcher) Search() (SearchOutcome, error) {
	s.start = time.Now()
	s.nodes = 0
	s.tt.NewSearch()
	s.allowTTEarlyReturn = !s.risksImmediateDraw()

	rootMoves := s.eval.Position().GenerateMoves(position.AllMoves)
	if rootMoves.Len() == 0 {
		return SearchOutcome{}, ErrNoLegalMoves
	}

	var last SearchOutcome
	haveResult := false

	for depth := 1; depth <= MaxPly; depth++ {
		s.iterationDepth = depth
		result, err := s.negascout(-Infinity, Infinity, depth, 0, true)
		if err != nil {
			if errors.Is(err, ErrSearchTerminated) && haveResult {
				return last, nil
			}
			return SearchOutcome{}, err
		}

		var best position.Move
		if len(result.Path) > 0 {
			best = result.Path[0]
		}
		last = SearchOutcome{
			BestMove:     best,
			RelativeEval: result.Score,
			Depth:        depth,
			Elapsed:      time.Since(s.start),
			OptimalPath:  result.Path,
		}
		haveResult = true
		s.rootPV = result.Path

		if result.Score >= WinValue-MaxPly || result.Score <= LossValue+MaxPly {
			break
		}
	}

	return last, nil
}

// risksImmediateDraw runs the 2-ply look-ahead from §4.8's "draw avoidance
// at root": if any line within two plies reaches a terminal draw, TT
// early-return is disabled for the whole search so a cached score from a
// different history can't mask a repetition the engine is walking into.
func (s *Searcher) risksImmediateDraw() bool {
	pos := s.eval.Position()
	firstPly := pos.GenerateMoves(position.AllMoves)
	for i := 0; i < firstPly.Len(); i++ {
		m1 := firstPly.Get(i)
		if s.eval.Make(m1) != nil {
			continue
		}
		drawn := pos.ComputeTerminalState() == position.Draw
		if !drawn {
			secondPly := pos.GenerateMoves(position.AllMoves)
			for j := 0; j < secondPly.Len(); j++ {
				m2 := secondPly.Get(j)
				if s.eval.Make(m2) != nil {
					continue
				}
				if pos.ComputeTerminalState() == position.Draw {
					drawn = true
				}
				s.eval.Unmake()
				if drawn {
					break
				}
			}
		}
		s.eval.Unmake()
		if drawn {
			return true
		}
	}
	return false
}

// negascout is one Negascout/PVS node per §4.8. ply is the distance from
// the search root; onPV indicates the precursor sequence from root to this
// node exactly matches the previous iteration's PV, the condition under
// which the PV move is injected as an ordering hint and LMR is withheld.
func (s *Searcher) negascout(alpha, beta, depth, ply int, onPV bool) (Result, error) {
	s.nodes++
	if s.end.ShouldEnd(Context{StartTime: s.start, Depth: s.iterationDepth, Cursor: s.nodes}) {
		return Result{}, ErrSearchTerminated
	}

	pos := s.eval.Position()

	switch pos.ComputeTerminalState() {
	case position.Loss:
		return Result{Score: LossValue}, nil
	case position.Draw:
		return Result{Score: DrawValue}, nil
	}

	if depth <= 0 {
		score := Quiescence(s.eval, alpha, beta, 0)
		return Result{Score: score}, nil
	}

	origAlpha := alpha
	inCheck := pos.InCheck()

	ttHint := nullMove
	if entry, ok := s.tt.Probe(pos.Key); ok {
		ttHint = entry.Move
		if int(entry.Depth) >= depth && s.allowTTEarlyReturn &&
			!isRepetitionInHistory(pos) && pseudoLegalHint(pos, entry.Move) {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Kind {
			case PvNode:
				return Result{Score: score, Path: ExtractPV(s.tt, pos, s.iterationDepth-ply)}, nil
			case CutNode:
				if score >= beta {
					return Result{Score: beta}, nil
				}
			case AllNode:
				if score <= alpha {
					return Result{Score: score}, nil
				}
			}
		}
	}

	if depth < 5 && beta < 1000 && !inCheck && sufficientNonPawnMaterial(pos) {
		undo := s.eval.MakeNull()
		childResult, err := s.negascout(-beta, -alpha, depth-3, ply+1, false)
		s.eval.UnmakeNull(undo)
		if err != nil {
			return Result{}, err
		}
		if -childResult.Score > beta {
			return Result{Score: beta}, nil
		}
	}

	moves := pos.GenerateMoves(position.AllMoves)
	scores := ScoreMoves(pos, moves)
	SortMoves(moves, scores)
	PromoteToFront(moves, scores, ttHint)
	if onPV && ply < len(s.rootPV) {
		PromoteToFront(moves, scores, s.rootPV[ply])
	}

	discoverers := pos.DiscoveredCheckers()
	pinned := pos.ComputePinned()

	bestScore := -Infinity
	var bestMove position.Move
	var bestPath []position.Move

	for i := 0; i < moves.Len(); i++ {
		if i > 0 {
			PickMove(moves, scores, i)
		}
		m := moves.Get(i)

		r := 1
		if !onPV && depth > 2 && !inCheck && !isTactical(pos, m, discoverers, pinned) {
			switch {
			case i >= 1 && i <= 6:
				r++
			case i > 6:
				r += depth / 3
			}
		}
		reducedDepth := depth - r
		if reducedDepth < 0 {
			reducedDepth = 0
		}

		childOnPV := onPV && i == 0 && ply < len(s.rootPV) && s.rootPV[ply] == m

		if err := s.eval.Make(m); err != nil {
			return Result{}, err
		}

		var childResult Result
		var err error
		if i == 0 {
			childResult, err = s.negascout(-beta, -alpha, reducedDepth, ply+1, childOnPV)
		} else {
			childResult, err = s.negascout(-alpha-1, -alpha, reducedDepth, ply+1, false)
			if err == nil {
				probe := -childResult.Score
				if probe > alpha && probe < beta {
					childResult, err = s.negascout(-beta, -alpha, reducedDepth, ply+1, false)
				}
			}
		}
		if err == nil && r > 1 && -childResult.Score > alpha {
			childResult, err = s.negascout(-beta, -alpha, depth-1, ply+1, childOnPV)
		}

		s.eval.Unmake()

		if err != nil {
			return Result{}, err
		}

		score := -childResult.Score
		if score > bestScore {
			bestScore = score
			bestMove = m
			bestPath = append([]position.Move{m}, childResult.Path...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.tt.Store(pos.Key, depth, AdjustScoreToTT(beta, ply), CutNode, m)
			return Result{Score: beta, Path: bestPath}, nil
		}
	}

	if bestScore < origAlpha {
		bestScore = origAlpha
	}

	if alpha > origAlpha {
		s.tt.Store(pos.Key, depth, AdjustScoreToTT(bestScore, ply), PvNode, bestMove)
	} else {
		s.tt.Store(pos.Key, depth, AdjustScoreToTT(bestScore, ply), AllNode, bestMove)
	}
	return Result{Score: bestScore, Path: bestPath}, nil
}

// sufficientNonPawnMaterial reports whether the side to move holds enough
// non-pawn material for null-move pruning to be sound, per §4.8/§9: pawns>2
// and non-pawn>1, or non-pawn>2 alone, avoiding zugzwang-prone endings.
func sufficientNonPawnMaterial(pos *position.Position) bool {
	us := pos.SideToMove
	pawns := pos.Pieces[us][position.Pawn].PopCount()
	nonPawn := pos.Pieces[us][position.Knight].PopCount() +
		pos.Pieces[us][position.Bishop].PopCount() +
		pos.Pieces[us][position.Rook].PopCount() +
		pos.Pieces[us][position.Queen].PopCount()
	return (pawns > 2 && nonPawn > 1) || nonPawn > 2
}

// isRepetitionInHistory reports whether pos's current key matches any
// ancestor in its history, per §4.7's TT early-return suppression rule.
func isRepetitionInHistory(pos *position.Position) bool {
	for _, h := range pos.History() {
		if h.Key == pos.Key {
			return true
		}
	}
	return false
}

// pseudoLegalHint checks that a move read from the transposition table
// still makes sense in pos, per §4.7: the piece at its source square
// matches, and its destination occupancy matches the stored capture field.
func pseudoLegalHint(pos *position.Position, m position.Move) bool {
	if m.Kind == position.Null {
		return false
	}
	if pos.PieceAt(m.From) != m.Moving {
		return false
	}
	if m.Kind == position.Enpassant {
		return pos.EnPassant == m.Dest
	}
	if m.IsCapture() {
		return pos.PieceAt(m.Dest) == m.Capture
	}
	return pos.PieceAt(m.Dest) == position.NoPiece
}

// isTactical reports whether m is a capture, promotion, check (direct or
// discovered), passed-pawn push, or moves a piece off a pin/discovery ray,
// per §4.8's is_tactical definition — such moves are excluded from LMR.
func isTactical(pos *position.Position, m position.Move, discoverers, pinned position.Bitboard) bool {
	if m.IsCapture() || m.Kind == position.Promote {
		return true
	}
	if position.SquareBB(m.From)&(discoverers|pinned) != 0 {
		return true
	}
	if givesCheck(pos, m, discoverers) {
		return true
	}
	if m.Moving.Class() == position.Pawn {
		enemyPawns := pos.Pieces[m.Moving.Side().Other()][position.Pawn]
		if isPassedPawn(m.Dest, m.Moving.Side(), enemyPawns) {
			return true
		}
	}
	return false
}

// givesCheck approximates §4.9: true if the moving piece attacks the enemy
// king from its destination under the post-move occupancy (direct check),
// or if the move's source square is a discovered-check blocker.
func givesCheck(pos *position.Position, m position.Move, discoverers position.Bitboard) bool {
	if position.SquareBB(m.From)&discoverers != 0 {
		return true
	}
	if m.Kind == position.Castle {
		return false
	}

	us := m.Moving.Side()
	enemyKing := pos.KingSquare[us.Other()]
	occupied := pos.AllOccupied&^position.SquareBB(m.From) | position.SquareBB(m.Dest)

	class := m.Moving.Class()
	if m.Kind == position.Promote {
		class = m.Promoted.Class()
	}

	switch class {
	case position.Pawn:
		return position.PawnAttacks(m.Dest, us)&position.SquareBB(enemyKing) != 0
	case position.Knight:
		return position.KnightAttacks(m.Dest)&position.SquareBB(enemyKing) != 0
	case position.Bishop:
		return position.BishopAttacks(m.Dest, occupied)&position.SquareBB(enemyKing) != 0
	case position.Rook:
		return position.RookAttacks(m.Dest, occupied)&position.SquareBB(enemyKing) != 0
	case position.Queen:
		return position.QueenAttacks(m.Dest, occupied)&position.SquareBB(enemyKing) != 0
	default:
		return false
	}
}
