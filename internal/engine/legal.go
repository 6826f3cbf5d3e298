package engine

// LegalMoves returns every fully legal move for color. Each pseudo-legal
// candidate is applied to a disposable clone and discarded when the
// mover's own king ends up attacked: simulate-then-discard, no
// incremental pin tracking.
func (b *Board) LegalMoves(color Color) []Move {
	legal := []Move{}
	for _, pp := range b.Pieces(color) {
		for _, m := range pseudoMoves(b, pp.Square) {
			sim := b.cloneForSim()
			sim.applyMove(m)
			if !sim.IsInCheck(color) {
				legal = append(legal, m)
			}
		}
	}
	return append(legal, b.castleMoves(color)...)
}

// castleMoves constructs the castle moves currently legal for color:
// right not revoked, rook still on its corner, no piece between king and
// rook, king not in check, and every square the king passes through
// (destination included) individually unattacked.
func (b *Board) castleMoves(color Color) []Move {
	y := 0
	kingside, queenside := b.rights.BlackKingside, b.rights.BlackQueenside
	if color == White {
		y = 7
		kingside, queenside = b.rights.WhiteKingside, b.rights.WhiteQueenside
	}
	if !kingside && !queenside {
		return nil
	}
	kingFrom := Square{X: 4, Y: y}
	if king := b.PieceAt(kingFrom); king.Type != King || king.Color != color {
		return nil
	}
	opp := color.Opposite()
	if b.IsAttacked(kingFrom, opp) {
		return nil
	}
	moves := []Move{}
	if kingside && b.cornerRook(Square{X: 7, Y: y}, color) &&
		b.filesEmpty(y, 5, 6) &&
		!b.IsAttacked(Square{X: 5, Y: y}, opp) && !b.IsAttacked(Square{X: 6, Y: y}, opp) {
		moves = append(moves, Move{From: kingFrom, To: Square{X: 6, Y: y}, Kind: MoveCastleKingside})
	}
	// queenside: the b-file square must be empty but only the king's two
	// transit squares need to be safe
	if queenside && b.cornerRook(Square{X: 0, Y: y}, color) &&
		b.filesEmpty(y, 1, 2, 3) &&
		!b.IsAttacked(Square{X: 3, Y: y}, opp) && !b.IsAttacked(Square{X: 2, Y: y}, opp) {
		moves = append(moves, Move{From: kingFrom, To: Square{X: 2, Y: y}, Kind: MoveCastleQueenside})
	}
	return moves
}

func (b *Board) filesEmpty(y int, files ...int) bool {
	for _, x := range files {
		if b.Occupied(Square{X: x, Y: y}) {
			return false
		}
	}
	return true
}

func (b *Board) cornerRook(sq Square, color Color) bool {
	p := b.PieceAt(sq)
	return p.Type == Rook && p.Color == color
}
