package engine

import "strings"

// PieceType identifies one of the six chess piece kinds.
type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Color is the side a piece belongs to.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece occupies a single square. The zero value marks an empty square.
// MoveCount is the authoritative "has moved" record; it is incremented on
// every application and decremented on undo.
type Piece struct {
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	MoveCount int       `json:"-"`
}

func (p Piece) IsEmpty() bool { return p.Type == "" }

// promotionTypes lists the pieces a pawn may become, in the order the
// generators fan them out.
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// PromotionTypeFromLetter maps an external single-letter promotion choice
// to a piece kind. Empty input means no choice was supplied.
func PromotionTypeFromLetter(s string) (PieceType, bool) {
	switch strings.ToLower(s) {
	case "":
		return "", true
	case "q":
		return Queen, true
	case "r":
		return Rook, true
	case "b":
		return Bishop, true
	case "n":
		return Knight, true
	}
	return "", false
}
