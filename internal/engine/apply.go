package engine

// Record is one applied move together with the snapshot needed to
// reverse it: castling rights and the en-passant target cannot always be
// reconstructed after the fact.
type Record struct {
	Move     Move  `json:"move"`
	Captured Piece `json:"captured"`

	capturedSq   Square
	prevRights   CastlingRights
	prevEP       Square
	prevHasEP    bool
	prevHalfmove int
}

// applyMove mutates b to realize m and all of its side effects. m must
// come from the generators for the side to move; nothing is validated
// here.
func (b *Board) applyMove(m Move) {
	rec := Record{
		Move:         m,
		prevRights:   b.rights,
		prevEP:       b.epTarget,
		prevHasEP:    b.hasEP,
		prevHalfmove: b.halfmove,
	}

	piece := b.PieceAt(m.From)
	movedType := piece.Type

	// remove the defender: on the destination for plain captures, on the
	// bypassed pawn square for en passant
	switch m.Kind {
	case MoveCapture, MovePromotionCapture:
		rec.Captured = b.PieceAt(m.To)
		rec.capturedSq = m.To
	case MoveEnPassant:
		rec.capturedSq = Square{X: m.To.X, Y: m.From.Y}
		rec.Captured = b.PieceAt(rec.capturedSq)
		b.clearSquare(rec.capturedSq)
	}

	// relocate, promoting on arrival when asked; color is preserved
	b.clearSquare(m.From)
	piece.MoveCount++
	if m.isPromotion() {
		piece.Type = m.Promotion
	}
	b.setPiece(m.To, piece)

	// the castle rook follows the king
	switch m.Kind {
	case MoveCastleKingside:
		b.relocateRook(Square{X: 7, Y: m.From.Y}, Square{X: 5, Y: m.From.Y}, 1)
	case MoveCastleQueenside:
		b.relocateRook(Square{X: 0, Y: m.From.Y}, Square{X: 3, Y: m.From.Y}, 1)
	}

	if movedType == King {
		if piece.Color == White {
			b.whiteKing = m.To
		} else {
			b.blackKing = m.To
		}
	}

	// rights revoke when a king or rook leaves its original square or a
	// rook is captured on one; never regranted
	b.revokeRights(m.From)
	b.revokeRights(m.To)

	// the en-passant window opens only for a double push and closes on
	// every other move
	if m.Kind == MoveDoublePawnPush {
		b.epTarget = Square{X: m.From.X, Y: (m.From.Y + m.To.Y) / 2}
		b.hasEP = true
	} else {
		b.hasEP = false
	}

	if movedType == Pawn || !rec.Captured.IsEmpty() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if b.toMove == Black {
		b.fullmove++
	}

	b.history = append(b.history, rec)
	b.toMove = b.toMove.Opposite()
}

// UndoMove reverses the most recently applied move, restoring the
// pre-move snapshot exactly. It is a no-op on a board with no history.
func (b *Board) UndoMove() {
	if len(b.history) == 0 {
		return
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := rec.Move

	piece := b.PieceAt(m.To)
	piece.MoveCount--
	if m.isPromotion() {
		piece.Type = Pawn
	}
	b.clearSquare(m.To)
	b.setPiece(m.From, piece)

	if !rec.Captured.IsEmpty() {
		b.setPiece(rec.capturedSq, rec.Captured)
	}

	switch m.Kind {
	case MoveCastleKingside:
		b.relocateRook(Square{X: 5, Y: m.From.Y}, Square{X: 7, Y: m.From.Y}, -1)
	case MoveCastleQueenside:
		b.relocateRook(Square{X: 3, Y: m.From.Y}, Square{X: 0, Y: m.From.Y}, -1)
	}

	if piece.Type == King {
		if piece.Color == White {
			b.whiteKing = m.From
		} else {
			b.blackKing = m.From
		}
	}

	b.rights = rec.prevRights
	b.epTarget = rec.prevEP
	b.hasEP = rec.prevHasEP
	b.halfmove = rec.prevHalfmove
	b.toMove = b.toMove.Opposite()
	if b.toMove == Black {
		b.fullmove--
	}
}

func (b *Board) relocateRook(from, to Square, countDelta int) {
	rook := b.PieceAt(from)
	rook.MoveCount += countDelta
	b.clearSquare(from)
	b.setPiece(to, rook)
}

func (b *Board) revokeRights(sq Square) {
	switch sq {
	case Square{X: 4, Y: 7}:
		b.rights.WhiteKingside, b.rights.WhiteQueenside = false, false
	case Square{X: 7, Y: 7}:
		b.rights.WhiteKingside = false
	case Square{X: 0, Y: 7}:
		b.rights.WhiteQueenside = false
	case Square{X: 4, Y: 0}:
		b.rights.BlackKingside, b.rights.BlackQueenside = false, false
	case Square{X: 7, Y: 0}:
		b.rights.BlackKingside = false
	case Square{X: 0, Y: 0}:
		b.rights.BlackQueenside = false
	}
}
