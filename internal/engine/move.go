package engine

// MoveKind classifies a move by the side effects it carries during
// application.
type MoveKind string

const (
	MoveNormal           MoveKind = "normal"
	MoveDoublePawnPush   MoveKind = "doublePawnPush"
	MoveCapture          MoveKind = "capture"
	MoveEnPassant        MoveKind = "enPassant"
	MoveCastleKingside   MoveKind = "castleKingside"
	MoveCastleQueenside  MoveKind = "castleQueenside"
	MovePromotion        MoveKind = "promotion"
	MovePromotionCapture MoveKind = "promotionCapture"
)

// Move describes one board transition. Kind is fixed at generation time
// and is consistent with the geometry that produced the move.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Kind      MoveKind  `json:"kind"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m Move) isPromotion() bool {
	return m.Kind == MovePromotion || m.Kind == MovePromotionCapture
}

func (m Move) isCastle() bool {
	return m.Kind == MoveCastleKingside || m.Kind == MoveCastleQueenside
}

// String renders long algebraic form, e.g. "e2e4" or "a7a8q".
func (m Move) String() string {
	s := m.From.Notation() + m.To.Notation()
	switch m.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}
