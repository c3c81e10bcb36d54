package position

import "testing"

func TestCheckmate(t *testing.T) {
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}

	t.Log(pos)
	t.Log("Checkers:", pos.Checkers)
	t.Log("InCheck:", pos.InCheck())

	moves := pos.GenerateMoves(AllMoves)
	t.Log("legal moves:", moves.Len())
	for i := 0; i < moves.Len(); i++ {
		t.Log("  move:", moves.Get(i))
	}

	if got := pos.ComputeTerminalState(); got != Loss {
		t.Errorf("expected Loss (checkmate), got %v", got)
	}
}

func TestNotCheckmate(t *testing.T) {
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}

	t.Log(pos)
	t.Log("Checkers:", pos.Checkers)
	t.Log("InCheck:", pos.InCheck())

	moves := pos.GenerateMoves(AllMoves)
	t.Log("legal moves:", moves.Len())
	for i := 0; i < moves.Len(); i++ {
		t.Log("  move:", moves.Get(i))
	}

	if got := pos.ComputeTerminalState(); got == Loss {
		t.Error("expected not checkmate, got Loss")
	}
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: black king has no legal move and is not in check.
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("error parsing FEN:", err)
	}

	if pos.InCheck() {
		t.Fatal("expected black not to be in check")
	}
	if got := pos.ComputeTerminalState(); got != Draw {
		t.Errorf("expected Draw (stalemate), got %v", got)
	}
}
