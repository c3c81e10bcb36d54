package engine

import "github.com/kestrelchess/corvid/internal/position"

// PieceValues is a caller-supplied table of values by Class, used by
// StaticExchangeEval. Per §4.2, SEE takes its piece values as a parameter
// rather than hardcoding the evaluator's own material scale, since move
// ordering and the exchange evaluator itself may reasonably disagree on
// what a piece is "worth" for swap-off purposes.
type PieceValues [6]int

// DefaultSEEValues are the mid-game material values, suitable for move
// ordering's use of SEE.
var DefaultSEEValues = PieceValues{
	materialMid[position.Pawn],
	materialMid[position.Knight],
	materialMid[position.Bishop],
	materialMid[position.Rook],
	materialMid[position.Queen],
	materialMid[position.King],
}

// StaticExchangeEval estimates the net material gain of playing m and
// letting both sides recapture on the destination square optimally,
// using values for the piece-value scale the caller chooses.
func StaticExchangeEval(pos *position.Position, m position.Move, values PieceValues) int {
	if m.Kind == position.Castle || m.Kind == position.Null {
		return 0
	}

	attacker := m.Moving
	if attacker == position.NoPiece {
		return 0
	}

	var capturedValue int
	if m.Kind == position.Enpassant {
		capturedValue = values[position.Pawn]
	} else if m.IsCapture() {
		capturedValue = values[m.Capture.Class()]
	} else {
		return 0
	}

	if m.Kind == position.Promote {
		capturedValue += values[m.Promoted.Class()] - values[position.Pawn]
	}

	return seeSwap(pos, m.Dest, m.From, attacker, capturedValue, values)
}

// seeSwap runs the exchange-swap algorithm on target, starting with
// firstAttacker already having captured for initialGain, then alternating
// least-valuable-attacker recaptures until one side has nothing left to
// recapture with, folding the resulting gain sequence back with a negamax.
func seeSwap(pos *position.Position, target, excludeFrom position.Square, firstAttacker position.Piece, initialGain int, values PieceValues) int {
	var gain [32]int
	d := 0
	gain[d] = initialGain

	occupied := pos.AllOccupied &^ position.SquareBB(excludeFrom)
	attackerValue := values[firstAttacker.Class()]
	side := firstAttacker.Side().Other()

	for {
		d++
		gain[d] = attackerValue - gain[d-1]

		attackerSq, attackerPiece := leastValuableAttacker(pos, target, side, occupied)
		if attackerSq == position.NoSquare {
			break
		}

		occupied &^= position.SquareBB(attackerSq)
		attackerValue = values[attackerPiece.Class()]
		side = side.Other()

		if d >= len(gain)-1 {
			break
		}
	}

	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking target
// given the (possibly reduced, mid-exchange) occupied bitboard. Sliding
// attackers are recomputed against occupied on every call, so a piece
// x-rayed by a removed blocker is picked up automatically.
func leastValuableAttacker(pos *position.Position, target position.Square, side position.Side, occupied position.Bitboard) (position.Square, position.Piece) {
	pawns := pos.Pieces[side][position.Pawn] & occupied
	if attackers := pawns & position.PawnAttacks(target, side.Other()); attackers != 0 {
		return attackers.LSB(), position.NewPiece(position.Pawn, side)
	}

	knights := pos.Pieces[side][position.Knight] & occupied
	if attackers := knights & position.KnightAttacks(target); attackers != 0 {
		return attackers.LSB(), position.NewPiece(position.Knight, side)
	}

	bishops := pos.Pieces[side][position.Bishop] & occupied
	if attackers := bishops & position.BishopAttacks(target, occupied); attackers != 0 {
		return attackers.LSB(), position.NewPiece(position.Bishop, side)
	}

	rooks := pos.Pieces[side][position.Rook] & occupied
	if attackers := rooks & position.RookAttacks(target, occupied); attackers != 0 {
		return attackers.LSB(), position.NewPiece(position.Rook, side)
	}

	queens := pos.Pieces[side][position.Queen] & occupied
	if attackers := queens & position.QueenAttacks(target, occupied); attackers != 0 {
		return attackers.LSB(), position.NewPiece(position.Queen, side)
	}

	king := pos.Pieces[side][position.King] & occupied
	if attackers := king & position.KingAttacks(target); attackers != 0 {
		return attackers.LSB(), position.NewPiece(position.King, side)
	}

	return position.NoSquare, position.NoPiece
}
