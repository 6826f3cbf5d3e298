package engine

// Perft counts legal-move leaves below b at the given depth: the
// standard correctness oracle for move generators. It applies and
// reverses moves on b itself, so it also exercises undo.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMoves(b.toMove)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		b.applyMove(m)
		nodes += Perft(b, depth-1)
		b.UndoMove()
	}
	return nodes
}

// PerftDivide splits the depth total across each root move, keyed by
// long algebraic form. Useful for diffing against a reference engine.
func PerftDivide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.LegalMoves(b.toMove) {
		b.applyMove(m)
		out[m.String()] = Perft(b, depth-1)
		b.UndoMove()
	}
	return out
}
