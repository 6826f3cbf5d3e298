package engine

// Direction sets shared by the pseudo-legal generators and the attack
// detector. Sliding pieces walk a direction until blocked; knights and
// kings take a single step.
var (
	rookDirs   = []Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Square{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Square{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Square{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// pseudoMovers maps each piece kind to its geometry-only generator.
// Castling is deliberately absent: the legality filter constructs castle
// moves itself because their legality depends on attack state.
var pseudoMovers = map[PieceType]func(*Board, Square, Piece) []Move{
	Pawn:   pawnMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Rook:   rookMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

// pseudoMoves generates the pseudo-legal moves of the piece standing on
// from: geometry and occupancy only, no self-check awareness.
func pseudoMoves(b *Board, from Square) []Move {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return nil
	}
	return pseudoMovers[p.Type](b, from, p)
}

func pawnMoves(b *Board, from Square, p Piece) []Move {
	moves := []Move{}
	dy := -1
	if p.Color == Black {
		dy = 1
	}
	// single push onto an empty square, double push behind it for an
	// unmoved pawn when both squares are free
	one := from.offset(0, dy)
	if one.InBounds() && !b.Occupied(one) {
		moves = appendPawnAdvance(moves, from, one, MoveNormal)
		two := from.offset(0, 2*dy)
		if p.MoveCount == 0 && two.InBounds() && !b.Occupied(two) {
			moves = append(moves, Move{From: from, To: two, Kind: MoveDoublePawnPush})
		}
	}
	for _, dx := range []int{-1, 1} {
		to := from.offset(dx, dy)
		if !to.InBounds() {
			continue
		}
		target := b.PieceAt(to)
		if !target.IsEmpty() && target.Color != p.Color {
			moves = appendPawnAdvance(moves, from, to, MoveCapture)
			continue
		}
		// en passant lands on the square skipped by the preceding
		// double push; the bypassed pawn sits beside the origin
		if target.IsEmpty() && b.hasEP && b.epTarget == to {
			moves = append(moves, Move{From: from, To: to, Kind: MoveEnPassant})
		}
	}
	return moves
}

// appendPawnAdvance fans a back-rank arrival into the four promotion
// choices and passes every other advance through unchanged.
func appendPawnAdvance(moves []Move, from, to Square, kind MoveKind) []Move {
	if to.Y != 0 && to.Y != 7 {
		return append(moves, Move{From: from, To: to, Kind: kind})
	}
	promoKind := MovePromotion
	if kind == MoveCapture {
		promoKind = MovePromotionCapture
	}
	for _, pt := range promotionTypes {
		moves = append(moves, Move{From: from, To: to, Kind: promoKind, Promotion: pt})
	}
	return moves
}

func knightMoves(b *Board, from Square, p Piece) []Move {
	return stepMoves(b, from, p, knightDirs)
}

func kingMoves(b *Board, from Square, p Piece) []Move {
	return stepMoves(b, from, p, kingDirs)
}

func bishopMoves(b *Board, from Square, p Piece) []Move {
	return slideMoves(b, from, p, bishopDirs)
}

func rookMoves(b *Board, from Square, p Piece) []Move {
	return slideMoves(b, from, p, rookDirs)
}

func queenMoves(b *Board, from Square, p Piece) []Move {
	return append(slideMoves(b, from, p, rookDirs), slideMoves(b, from, p, bishopDirs)...)
}

// stepMoves emits the single-step offsets that stay on the board and do
// not land on an own piece.
func stepMoves(b *Board, from Square, p Piece, dirs []Square) []Move {
	moves := []Move{}
	for _, d := range dirs {
		to := from.offset(d.X, d.Y)
		if !to.InBounds() {
			continue
		}
		target := b.PieceAt(to)
		switch {
		case target.IsEmpty():
			moves = append(moves, Move{From: from, To: to, Kind: MoveNormal})
		case target.Color != p.Color:
			moves = append(moves, Move{From: from, To: to, Kind: MoveCapture})
		}
	}
	return moves
}

// slideMoves walks each direction one square at a time: empty squares
// accumulate, an opponent piece is included and stops the ray, an own
// piece or the board edge stops it outright.
func slideMoves(b *Board, from Square, p Piece, dirs []Square) []Move {
	moves := []Move{}
	for _, d := range dirs {
		for to := from.offset(d.X, d.Y); to.InBounds(); to = to.offset(d.X, d.Y) {
			target := b.PieceAt(to)
			if target.IsEmpty() {
				moves = append(moves, Move{From: from, To: to, Kind: MoveNormal})
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, Move{From: from, To: to, Kind: MoveCapture})
			}
			break
		}
	}
	return moves
}
