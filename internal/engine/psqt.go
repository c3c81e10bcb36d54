package engine

import "github.com/kestrelchess/corvid/internal/position"

type psqtScore struct {
	mid int
	end int
}

// halfTable holds one side-of-the-board column (files a-d) per rank, in rank
// 1..8 order; unfoldSymmetric mirrors it across the d/e file boundary to
// produce a full 64-square table.
type halfTable [32]psqtScore

// knightTable, bishopTable, rookTable, queenTable, kingTable are Stockfish's
// white-side piece-square values (mid, end), file a-d per rank, rank 1 to 8.
var knightTable = halfTable{
	{-169, -105}, {-96, -74}, {-80, -46}, {-79, -18},
	{-79, -70}, {-39, -56}, {-24, -15}, {-9, 6},
	{-64, -38}, {-20, -33}, {4, -5}, {19, 27},
	{-28, -36}, {5, 0}, {41, 13}, {47, 34},
	{-29, -41}, {13, -20}, {42, 4}, {52, 35},
	{-11, -51}, {28, -38}, {63, -17}, {55, 19},
	{-67, -64}, {-21, -45}, {6, -37}, {37, 16},
	{-200, -98}, {-80, -89}, {-53, -53}, {-32, -16},
}

var bishopTable = halfTable{
	{-44, -63}, {-4, -30}, {-11, -35}, {-28, -8},
	{-18, -38}, {7, -13}, {14, -14}, {3, 0},
	{-8, -18}, {24, 0}, {-3, -7}, {15, 13},
	{1, -26}, {8, -3}, {26, 1}, {37, 16},
	{-7, -24}, {30, -6}, {23, -10}, {28, 17},
	{-17, -26}, {4, 2}, {-1, 1}, {8, 16},
	{-21, -34}, {-19, -18}, {10, -7}, {-6, 9},
	{-48, -51}, {-3, -40}, {-12, -39}, {-25, -20},
}

var rookTable = halfTable{
	{-24, -2}, {-13, -6}, {-7, -3}, {2, -2},
	{-18, -10}, {-10, -7}, {-5, 1}, {9, 0},
	{-21, 10}, {-7, -4}, {3, 2}, {-1, -2},
	{-13, -5}, {-5, 2}, {-4, -8}, {-6, 8},
	{-24, -8}, {-12, 5}, {-1, 4}, {6, -9},
	{-24, 3}, {-4, -2}, {4, -10}, {10, 7},
	{-8, 1}, {6, 2}, {10, 17}, {12, -8},
	{-22, 12}, {-24, -6}, {-6, 13}, {4, 7},
}

var queenTable = halfTable{
	{3, -69}, {-5, -57}, {-5, -47}, {4, -26},
	{-3, -55}, {5, -31}, {8, -22}, {12, -4},
	{-3, -39}, {6, -18}, {13, -9}, {7, 3},
	{4, -23}, {5, -3}, {9, 13}, {8, 24},
	{0, -29}, {14, -6}, {12, 9}, {5, 21},
	{-4, -38}, {10, -18}, {6, -12}, {8, 1},
	{-5, -50}, {6, -27}, {10, -24}, {8, -8},
	{-2, -75}, {-2, -52}, {1, -43}, {-2, -36},
}

var kingTable = halfTable{
	{272, 0}, {325, 41}, {273, 80}, {190, 93},
	{277, 57}, {305, 98}, {241, 138}, {183, 131},
	{198, 86}, {253, 138}, {168, 165}, {120, 173},
	{169, 103}, {191, 152}, {136, 168}, {108, 169},
	{145, 98}, {176, 166}, {112, 197}, {69, 194},
	{122, 87}, {159, 164}, {85, 174}, {36, 189},
	{87, 40}, {120, 99}, {64, 128}, {25, 141},
	{64, 5}, {87, 60}, {49, 75}, {0, 75},
}

// pawnTable is the full asymmetric 64-entry table, rank 1 to rank 8, file a
// to h within each rank.
var pawnTable = [64]psqtScore{
	{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	{-5, -19}, {7, -5}, {19, 7}, {-20, -20}, {-20, -20}, {10, 10}, {3, -6}, {3, -10},
	{-22, -4}, {5, -6}, {22, 3}, {32, 4}, {15, 4}, {11, -10}, {-15, -10}, {-9, -10},
	{-12, -9}, {4, -10}, {17, -12}, {40, -13}, {20, -4}, {6, -8}, {-23, -2}, {-8, 6},
	{5, 8}, {-13, 13}, {-2, -6}, {11, -12}, {1, -12}, {-13, 3}, {0, 4}, {13, 9},
	{-18, 13}, {-15, 6}, {-5, 7}, {-8, 30}, {22, 28}, {-7, 21}, {-12, 20}, {-5, 28},
	{-8, 7}, {10, 4}, {-16, 19}, {5, 25}, {-13, 21}, {-3, 12}, {7, -11}, {-7, 0},
	{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
}

// unfoldSymmetric expands a file a-d half table into the full 64-square
// table, mirroring across the d/e file boundary.
func unfoldSymmetric(half halfTable) [64]psqtScore {
	var full [64]psqtScore
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			column := file
			if column >= 4 {
				column = 7 - file
			}
			full[rank*8+file] = half[4*rank+column]
		}
	}
	return full
}

var whiteTables [6][64]psqtScore

func init() {
	whiteTables[position.Pawn] = pawnTable
	whiteTables[position.Knight] = unfoldSymmetric(knightTable)
	whiteTables[position.Bishop] = unfoldSymmetric(bishopTable)
	whiteTables[position.Rook] = unfoldSymmetric(rookTable)
	whiteTables[position.Queen] = unfoldSymmetric(queenTable)
	whiteTables[position.King] = unfoldSymmetric(kingTable)
}

func psqtValue(piece position.Piece, sq position.Square) psqtScore {
	class := piece.Class()
	if piece.Side() == position.White {
		return whiteTables[class][sq]
	}
	black := whiteTables[class][sq.Mirror()]
	return psqtScore{mid: -black.mid, end: -black.end}
}

// PSQTMid returns the midgame piece-square value for piece at sq, used by
// move ordering's positional-delta scoring.
func PSQTMid(piece position.Piece, sq position.Square) int {
	return psqtValue(piece, sq).mid
}

// PSQTEnd returns the endgame piece-square value for piece at sq.
func PSQTEnd(piece position.Piece, sq position.Square) int {
	return psqtValue(piece, sq).end
}

// PSQTFacet incrementally maintains the sum of every piece's piece-square
// contribution, white-positive.
type PSQTFacet struct {
	mid int
	end int
}

// NewPSQTFacet builds an uninitialized piece-square facet; call Init before use.
func NewPSQTFacet() *PSQTFacet {
	return &PSQTFacet{}
}

func (f *PSQTFacet) add(piece position.Piece, sq position.Square) {
	v := psqtValue(piece, sq)
	f.mid += v.mid
	f.end += v.end
}

func (f *PSQTFacet) remove(piece position.Piece, sq position.Square) {
	v := psqtValue(piece, sq)
	f.mid -= v.mid
	f.end -= v.end
}

func (f *PSQTFacet) Init(pos *position.Position) {
	f.mid, f.end = 0, 0
	for side := position.White; side <= position.Black; side++ {
		for c := position.Pawn; c <= position.King; c++ {
			bb := pos.Pieces[side][c]
			for bb != 0 {
				sq := bb.PopLSB()
				f.add(position.NewPiece(c, side), sq)
			}
		}
	}
}

func (f *PSQTFacet) Make(m position.Move, pos *position.Position) {
	switch m.Kind {
	case position.Null:
		return
	case position.Castle:
		kingFrom, kingTo := m.Corner.KingMove()
		rookFrom, rookTo := m.Corner.RookMove()
		side := m.Corner.Side()
		f.remove(position.NewPiece(position.King, side), kingFrom)
		f.add(position.NewPiece(position.King, side), kingTo)
		f.remove(position.NewPiece(position.Rook, side), rookFrom)
		f.add(position.NewPiece(position.Rook, side), rookTo)
	case position.Enpassant:
		f.remove(m.Moving, m.From)
		f.add(m.Moving, m.Dest)
		f.remove(m.Capture, m.EPCapture)
	case position.Promote:
		f.remove(position.NewPiece(position.Pawn, m.Promoted.Side()), m.From)
		f.add(m.Promoted, m.Dest)
		if m.IsCapture() {
			f.remove(m.Capture, m.Dest)
		}
	default:
		f.remove(m.Moving, m.From)
		f.add(m.Moving, m.Dest)
		if m.IsCapture() {
			f.remove(m.Capture, m.Dest)
		}
	}
}

func (f *PSQTFacet) Unmake(m position.Move, pos *position.Position) {
	switch m.Kind {
	case position.Null:
		return
	case position.Castle:
		kingFrom, kingTo := m.Corner.KingMove()
		rookFrom, rookTo := m.Corner.RookMove()
		side := m.Corner.Side()
		f.add(position.NewPiece(position.King, side), kingFrom)
		f.remove(position.NewPiece(position.King, side), kingTo)
		f.add(position.NewPiece(position.Rook, side), rookFrom)
		f.remove(position.NewPiece(position.Rook, side), rookTo)
	case position.Enpassant:
		f.add(m.Moving, m.From)
		f.remove(m.Moving, m.Dest)
		f.add(m.Capture, m.EPCapture)
	case position.Promote:
		f.add(position.NewPiece(position.Pawn, m.Promoted.Side()), m.From)
		f.remove(m.Promoted, m.Dest)
		if m.IsCapture() {
			f.add(m.Capture, m.Dest)
		}
	default:
		f.add(m.Moving, m.From)
		f.remove(m.Moving, m.Dest)
		if m.IsCapture() {
			f.add(m.Capture, m.Dest)
		}
	}
}

func (f *PSQTFacet) Score(pos *position.Position) Evaluation {
	return PhasedEval(f.mid, f.end)
}
