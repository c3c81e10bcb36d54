package position

// DiscoveredCheckers returns, for the side to move, the bitboard of its own
// pieces that currently block one of their own sliders from the enemy king
// — i.e. pieces whose movement off that line would reveal a check. Used by
// quiescence's quiet-check generation (§4.9) to extend move generation
// beyond directly-checking moves.
func (p *Position) DiscoveredCheckers() Bitboard {
	us := p.SideToMove
	them := us.Other()
	enemyKing := p.KingSquare[them]
	var discoverers Bitboard

	snipers := RookAttacks(enemyKing, 0) & (p.Pieces[us][Rook] | p.Pieces[us][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, enemyKing) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			discoverers |= blockers
		}
	}

	snipers = BishopAttacks(enemyKing, 0) & (p.Pieces[us][Bishop] | p.Pieces[us][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, enemyKing) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			discoverers |= blockers
		}
	}

	return discoverers
}

// ComputePinned computes the pieces of the side to move that are pinned to
// their own king, via x-ray attack detection along ranks/files/diagonals.
func (p *Position) ComputePinned() Bitboard {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	var pinned Bitboard

	snipers := RookAttacks(ksq, 0) & (p.Pieces[them][Rook] | p.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}

	snipers = BishopAttacks(ksq, 0) & (p.Pieces[them][Bishop] | p.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.AllOccupied
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}
