package engine

import "strings"

// mirrorFEN builds the FEN of the color-flipped, vertically-reflected
// position: what was White's is now Black's, sitting on the mirrored rank.
// Used to check §8's eval(p).relative_eval() == -eval(mirror(p)).relative_eval()
// invariant without needing a Position-level mirror operation.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")

	mirrored := make([]string, len(ranks))
	for i, rank := range ranks {
		mirrored[len(ranks)-1-i] = swapCase(rank)
	}
	placement := strings.Join(mirrored, "/")

	side := "w"
	if fields[1] == "w" {
		side = "b"
	}

	castling := "-"
	if fields[2] != "-" {
		castling = swapCastlingCase(fields[2])
	}

	ep := fields[3]
	if ep != "-" {
		file := ep[0]
		rank := ep[1]
		mirroredRank := '1' + ('8' - rank)
		ep = string(file) + string(mirroredRank)
	}

	rest := "0 1"
	if len(fields) > 4 {
		rest = strings.Join(fields[4:], " ")
	}

	return placement + " " + side + " " + castling + " " + ep + " " + rest
}

func swapCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func swapCastlingCase(s string) string {
	return swapCase(s)
}
