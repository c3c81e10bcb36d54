package position

import "fmt"

// Corner identifies one of the four castling destinations.
type Corner uint8

const (
	WhiteKingside Corner = iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

func (c Corner) String() string {
	switch c {
	case WhiteKingside, BlackKingside:
		return "O-O"
	case WhiteQueenside, BlackQueenside:
		return "O-O-O"
	default:
		return "?"
	}
}

// KingMove returns the from/to squares of the king in a castle move.
func (c Corner) KingMove() (from, to Square) {
	switch c {
	case WhiteKingside:
		return E1, G1
	case WhiteQueenside:
		return E1, C1
	case BlackKingside:
		return E8, G8
	case BlackQueenside:
		return E8, C8
	default:
		return NoSquare, NoSquare
	}
}

// RookMove returns the from/to squares of the rook in a castle move.
func (c Corner) RookMove() (from, to Square) {
	switch c {
	case WhiteKingside:
		return H1, F1
	case WhiteQueenside:
		return A1, D1
	case BlackKingside:
		return H8, F8
	case BlackQueenside:
		return A8, D8
	default:
		return NoSquare, NoSquare
	}
}

// Side returns the side this corner belongs to.
func (c Corner) Side() Side {
	if c == WhiteKingside || c == WhiteQueenside {
		return White
	}
	return Black
}

// Kind discriminates the cases of the Move tagged union.
type Kind uint8

const (
	Normal Kind = iota
	Enpassant
	Castle
	Promote
	Null
)

// Move is a tagged union over the moves the search needs to consider: a
// quiet move or capture (Normal), an en-passant capture, a castle identified
// by its corner, a pawn promotion, or the null move used only by null-move
// pruning. Only the fields relevant to Kind are meaningful.
type Move struct {
	Kind Kind

	Moving  Piece
	From    Square
	Dest    Square
	Capture Piece // NoPiece if the move is not a capture

	EPCapture Square // Enpassant: square of the captured pawn (not Dest)

	Corner Corner // Castle

	Promoted Piece // Promote
}

// NewNormal builds a non-castle, non-enpassant, non-promotion move.
func NewNormal(moving Piece, from, dest Square, capture Piece) Move {
	return Move{Kind: Normal, Moving: moving, From: from, Dest: dest, Capture: capture}
}

// NewEnpassant builds an en-passant capture.
func NewEnpassant(side Side, from, dest, captureSq Square) Move {
	return Move{
		Kind:      Enpassant,
		Moving:    NewPiece(Pawn, side),
		From:      from,
		Dest:      dest,
		Capture:   NewPiece(Pawn, side.Other()),
		EPCapture: captureSq,
	}
}

// NewCastle builds a castling move for the given corner.
func NewCastle(corner Corner) Move {
	from, to := corner.KingMove()
	return Move{
		Kind:   Castle,
		Moving: NewPiece(King, corner.Side()),
		From:   from,
		Dest:   to,
		Corner: corner,
	}
}

// NewPromote builds a promotion, with or without a capture.
func NewPromote(from, dest Square, promoted, capture Piece) Move {
	return Move{
		Kind:     Promote,
		Moving:   NewPiece(Pawn, promoted.Side()),
		From:     from,
		Dest:     dest,
		Promoted: promoted,
		Capture:  capture,
	}
}

// NullMove is the single Null move value. Move generation never produces it;
// it is legal only as the argument to the search's null-move pruning step.
var NullMove = Move{Kind: Null, Moving: NoPiece, From: NoSquare, Dest: NoSquare, Capture: NoPiece}

// IsCapture reports whether the move removes an enemy piece from the board.
func (m Move) IsCapture() bool {
	return m.Capture != NoPiece
}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && m.Kind != Promote
}

// IsRepeatable reports whether the move can participate in a threefold
// repetition: captures and pawn moves both irreversibly change the position
// and reset repetition tracking, so neither counts.
func (m Move) IsRepeatable() bool {
	if m.Kind == Null || m.IsCapture() {
		return false
	}
	return m.Moving.Class() != Pawn
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q" for
// promotions, and "0000" for the null move.
func (m Move) String() string {
	switch m.Kind {
	case Null:
		return "0000"
	case Promote:
		var c byte
		switch m.Promoted.Class() {
		case Knight:
			c = 'n'
		case Bishop:
			c = 'b'
		case Rook:
			c = 'r'
		default:
			c = 'q'
		}
		return fmt.Sprintf("%s%s%c", m.From, m.Dest, c)
	default:
		return fmt.Sprintf("%s%s", m.From, m.Dest)
	}
}

// ParseMove parses a UCI-style move string against pos to recover which
// tagged-union case it represents.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return Move{}, fmt.Errorf("invalid move string: %s", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return Move{}, fmt.Errorf("no piece at %s", from)
	}
	capture := pos.PieceAt(to)

	if len(s) == 5 {
		var promo Class
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return Move{}, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromote(from, to, NewPiece(promo, piece.Side()), capture), nil
	}

	if piece.Class() == King && abs(int(to)-int(from)) == 2 {
		corner := cornerFor(piece.Side(), to)
		return NewCastle(corner), nil
	}

	if piece.Class() == Pawn && to == pos.EnPassant {
		return NewEnpassant(piece.Side(), from, to, epCaptureSquare(piece.Side(), to)), nil
	}

	return NewNormal(piece, from, to, capture), nil
}

func cornerFor(side Side, kingDest Square) Corner {
	if side == White {
		if kingDest == G1 {
			return WhiteKingside
		}
		return WhiteQueenside
	}
	if kingDest == G8 {
		return BlackKingside
	}
	return BlackQueenside
}

// epCaptureSquare returns the square of the pawn captured en passant, given
// the moving side and the destination square of the capturing pawn.
func epCaptureSquare(side Side, dest Square) Square {
	if side == White {
		return dest - 8
	}
	return dest + 8
}

// MoveList is a fixed-capacity, allocation-free list of moves, sized for the
// worst-case branching factor a chess position can present.
type MoveList struct {
	moves [256]Move
	count int
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i, used by move-ordering passes.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Swap exchanges the moves at indices i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the moves currently held as a slice view over the backing array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Contains reports whether the list holds the given move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// MoveKind selects which subset of moves GenerateMoves returns.
type MoveKind uint8

const (
	AllMoves MoveKind = iota
	CapturesOnly
	CapturesAndChecks
)

// UndoInfo carries the position state applyMove overwrites, so reverseMove
// can restore it exactly without recomputing it. Piece placement is restored
// by replaying the move's own fields, so UndoInfo only needs the ambient
// state applyMove mutates independently of the moved pieces.
type UndoInfo struct {
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
}
