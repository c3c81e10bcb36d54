package position

// GenerateMoves generates legal moves filtered by kind: AllMoves returns
// every legal move, CapturesOnly returns captures and promotions, and
// CapturesAndChecks additionally includes quiet moves that give check —
// the set quiescence search walks at shallow extension depth.
func (p *Position) GenerateMoves(kind MoveKind) *MoveList {
	pseudo := &MoveList{}
	switch kind {
	case AllMoves:
		p.generateAllMoves(pseudo)
	case CapturesOnly:
		p.generateCaptures(pseudo)
	case CapturesAndChecks:
		p.generateCaptures(pseudo)
		p.generateQuietChecks(pseudo)
	}
	return p.filterLegalMoves(pseudo)
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	enemies := p.Occupied[them]

	p.generatePawnMoves(ml, us, enemies, occupied, true)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & ^p.Occupied[us]
		addTargets(ml, NewPiece(Knight, us), from, attacks, p)
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & ^p.Occupied[us]
		addTargets(ml, NewPiece(Bishop, us), from, attacks, p)
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & ^p.Occupied[us]
		addTargets(ml, NewPiece(Rook, us), from, attacks, p)
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & ^p.Occupied[us]
		addTargets(ml, NewPiece(Queen, us), from, attacks, p)
	}

	from := p.KingSquare[us]
	attacks := KingAttacks(from) & ^p.Occupied[us]
	addTargets(ml, NewPiece(King, us), from, attacks, p)

	p.generateCastlingMoves(ml, us)
}

// addTargets appends Normal moves (or captures) for each set bit in targets.
func addTargets(ml *MoveList, moving Piece, from Square, targets Bitboard, p *Position) {
	for targets != 0 {
		to := targets.PopLSB()
		ml.Add(NewNormal(moving, from, to, p.PieceAt(to)))
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, us Side, enemies, occupied Bitboard, includeQuiet bool) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	pawnPiece := NewPiece(Pawn, us)

	if includeQuiet {
		nonPromo := push1 & ^promotionRank
		for nonPromo != 0 {
			to := nonPromo.PopLSB()
			from := Square(int(to) - pushDir)
			ml.Add(NewNormal(pawnPiece, from, to, NoPiece))
		}
		for push2 != 0 {
			to := push2.PopLSB()
			from := Square(int(to) - 2*pushDir)
			ml.Add(NewNormal(pawnPiece, from, to, NoPiece))
		}
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewNormal(pawnPiece, from, to, p.PieceAt(to)))
	}
	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewNormal(pawnPiece, from, to, p.PieceAt(to)))
	}

	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, us, from, to, NoPiece)
	}
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, us, from, to, p.PieceAt(to))
	}
	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, us, from, to, p.PieceAt(to))
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			capSq := epCaptureSquare(us, p.EnPassant)
			ml.Add(NewEnpassant(us, from, p.EnPassant, capSq))
		}
	}
}

func addPromotions(ml *MoveList, side Side, from, to Square, capture Piece) {
	ml.Add(NewPromote(from, to, NewPiece(Queen, side), capture))
	ml.Add(NewPromote(from, to, NewPiece(Rook, side), capture))
	ml.Add(NewPromote(from, to, NewPiece(Bishop, side), capture))
	ml.Add(NewPromote(from, to, NewPiece(Knight, side), capture))
}

func (p *Position) generateCastlingMoves(ml *MoveList, us Side) {
	them := us.Other()

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewCastle(WhiteKingside))
				}
			}
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewCastle(WhiteQueenside))
				}
			}
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewCastle(BlackKingside))
				}
			}
		}
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewCastle(BlackQueenside))
				}
			}
		}
	}
}

// generateCaptures generates captures and promotions (quiescence's default set).
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	p.generatePawnMoves(ml, us, enemies, occupied, false)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & enemies
		addTargets(ml, NewPiece(Knight, us), from, attacks, p)
	}
	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & enemies
		addTargets(ml, NewPiece(Bishop, us), from, attacks, p)
	}
	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & enemies
		addTargets(ml, NewPiece(Rook, us), from, attacks, p)
	}
	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & enemies
		addTargets(ml, NewPiece(Queen, us), from, attacks, p)
	}
	from := p.KingSquare[us]
	attacks := KingAttacks(from) & enemies
	addTargets(ml, NewPiece(King, us), from, attacks, p)
}

// generateQuietChecks appends quiet (non-capturing, non-promoting) moves that
// give check, probing the resulting attacks with the attack functions on an
// adjusted occupancy rather than paying for a full make/unmake per candidate.
func (p *Position) generateQuietChecks(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	occupied := p.AllOccupied
	empty := ^occupied
	enemyKing := p.KingSquare[them]
	discoverers := p.DiscoveredCheckers()

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		targets := KnightAttacks(from) & empty
		isDiscoverer := discoverers.IsSet(from)
		for targets != 0 {
			to := targets.PopLSB()
			if KnightAttacks(to).IsSet(enemyKing) || (isDiscoverer && !Aligned(from, to, enemyKing)) {
				ml.Add(NewNormal(NewPiece(Knight, us), from, to, NoPiece))
			}
		}
	}
	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		targets := BishopAttacks(from, occupied) & empty
		for targets != 0 {
			to := targets.PopLSB()
			nextOcc := (occupied &^ SquareBB(from)) | SquareBB(to)
			if BishopAttacks(to, nextOcc).IsSet(enemyKing) {
				ml.Add(NewNormal(NewPiece(Bishop, us), from, to, NoPiece))
			}
		}
	}
	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		targets := RookAttacks(from, occupied) & empty
		for targets != 0 {
			to := targets.PopLSB()
			nextOcc := (occupied &^ SquareBB(from)) | SquareBB(to)
			if RookAttacks(to, nextOcc).IsSet(enemyKing) {
				ml.Add(NewNormal(NewPiece(Rook, us), from, to, NoPiece))
			}
		}
	}
	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		targets := QueenAttacks(from, occupied) & empty
		for targets != 0 {
			to := targets.PopLSB()
			nextOcc := (occupied &^ SquareBB(from)) | SquareBB(to)
			if QueenAttacks(to, nextOcc).IsSet(enemyKing) {
				ml.Add(NewNormal(NewPiece(Queen, us), from, to, NoPiece))
			}
		}
	}
	pawns := p.Pieces[us][Pawn]
	for pawns != 0 {
		from := pawns.PopLSB()
		var push Bitboard
		if us == White {
			push = SquareBB(from).North() & empty & ^Rank8
		} else {
			push = SquareBB(from).South() & empty & ^Rank1
		}
		if push != 0 {
			to := push.LSB()
			if pawnAttacks[us][to].IsSet(enemyKing) {
				ml.Add(NewNormal(NewPiece(Pawn, us), from, to, NoPiece))
			}
		}
	}
}

// filterLegalMoves filters out moves that leave the mover's own king in check.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := &MoveList{}
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.isPseudoLegalMoveLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// isPseudoLegalMoveLegal reports whether applying m leaves the mover's own
// king safe. King moves are checked by attack-testing the destination
// directly; all other moves are checked by making and unmaking.
func (p *Position) isPseudoLegalMoveLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]

	if m.Kind == Castle {
		return true // squares already validated during generation
	}

	if m.From == ksq {
		occ := p.AllOccupied &^ SquareBB(m.From)
		return p.AttackersBySide(m.Dest, them, occ) == 0
	}

	undo := p.applyMove(m)
	attacked := p.IsSquareAttacked(ksq, them)
	p.reverseMove(m, undo)
	return !attacked
}
