package engine

// IsAttacked reports whether some pseudo-legal move of a byColor piece
// targets sq. The scan runs outward from sq along the same direction
// tables the generators use, which enumerates exactly the capture-capable
// pseudo-legal moves without materializing them. Pawn pushes target
// squares without attacking them and are excluded by construction.
//
// This detector sits strictly below the legality filter: it never calls
// it, directly or indirectly.
func (b *Board) IsAttacked(sq Square, byColor Color) bool {
	for _, d := range rookDirs {
		for to := sq.offset(d.X, d.Y); to.InBounds(); to = to.offset(d.X, d.Y) {
			p := b.PieceAt(to)
			if p.IsEmpty() {
				continue
			}
			if p.Color == byColor && (p.Type == Rook || p.Type == Queen) {
				return true
			}
			break
		}
	}
	for _, d := range bishopDirs {
		for to := sq.offset(d.X, d.Y); to.InBounds(); to = to.offset(d.X, d.Y) {
			p := b.PieceAt(to)
			if p.IsEmpty() {
				continue
			}
			if p.Color == byColor && (p.Type == Bishop || p.Type == Queen) {
				return true
			}
			break
		}
	}
	for _, d := range knightDirs {
		if to := sq.offset(d.X, d.Y); to.InBounds() {
			if p := b.PieceAt(to); p.Color == byColor && p.Type == Knight {
				return true
			}
		}
	}
	for _, d := range kingDirs {
		if to := sq.offset(d.X, d.Y); to.InBounds() {
			if p := b.PieceAt(to); p.Color == byColor && p.Type == King {
				return true
			}
		}
	}
	// a pawn attacks one diagonal step toward the enemy side, so the
	// attacker stands one rank behind sq from its own point of view
	dy := 1
	if byColor == Black {
		dy = -1
	}
	for _, dx := range []int{-1, 1} {
		if from := sq.offset(dx, dy); from.InBounds() {
			if p := b.PieceAt(from); p.Color == byColor && p.Type == Pawn {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether color's king square is attacked by the
// opposite side.
func (b *Board) IsInCheck(color Color) bool {
	return b.IsAttacked(b.KingSquare(color), color.Opposite())
}
