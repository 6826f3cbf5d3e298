package engine

import "fmt"

// CastlingRights tracks the four castle permissions. Rights are only
// revoked during play, never regranted.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// PlacedPiece pairs a piece with the square it stands on.
type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// Board holds a full position: the 64-square mailbox, side to move,
// castling rights, en-passant target and the ordered move history. It is
// a plain value aside from the history slice, which keeps clone-based
// simulation cheap. All mutation goes through move application.
type Board struct {
	squares   [8][8]Piece
	toMove    Color
	rights    CastlingRights
	epTarget  Square
	hasEP     bool
	whiteKing Square
	blackKing Square
	halfmove  int
	fullmove  int
	history   []Record
}

// NewBoard returns the standard initial position.
func NewBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) PieceAt(sq Square) Piece  { return b.squares[sq.Y][sq.X] }
func (b *Board) Occupied(sq Square) bool  { return !b.PieceAt(sq).IsEmpty() }
func (b *Board) ToMove() Color            { return b.toMove }
func (b *Board) Rights() CastlingRights   { return b.rights }
func (b *Board) HalfmoveClock() int       { return b.halfmove }
func (b *Board) FullmoveNumber() int      { return b.fullmove }

func (b *Board) setPiece(sq Square, p Piece) { b.squares[sq.Y][sq.X] = p }
func (b *Board) clearSquare(sq Square)       { b.squares[sq.Y][sq.X] = Piece{} }

// EnPassantTarget returns the square skipped by the immediately
// preceding double pawn push, when one exists.
func (b *Board) EnPassantTarget() (Square, bool) {
	return b.epTarget, b.hasEP
}

// Pieces enumerates all pieces of one color as a fresh slice; callers may
// range over it as often as they like.
func (b *Board) Pieces(color Color) []PlacedPiece {
	out := make([]PlacedPiece, 0, 16)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if !p.IsEmpty() && p.Color == color {
				out = append(out, PlacedPiece{Square: Square{X: x, Y: y}, Piece: p})
			}
		}
	}
	return out
}

// KingSquare locates color's king. A missing king is a corrupted
// position, unreachable through legal play, so it panics rather than
// limping on.
func (b *Board) KingSquare(color Color) Square {
	sq := b.whiteKing
	if color == Black {
		sq = b.blackKing
	}
	if p := b.PieceAt(sq); p.Type != King || p.Color != color {
		panic(fmt.Sprintf("engine: %s king missing from board", color))
	}
	return sq
}

// History returns a copy of the applied-move records, oldest first.
func (b *Board) History() []Record {
	out := make([]Record, len(b.history))
	copy(out, b.history)
	return out
}

// Clone returns an independent copy sharing no mutable state with b.
func (b *Board) Clone() *Board {
	c := *b
	c.history = make([]Record, len(b.history))
	copy(c.history, b.history)
	return &c
}

// cloneForSim copies the position without the move history; the legality
// filter discards the clone right after the check test.
func (b *Board) cloneForSim() *Board {
	c := *b
	c.history = nil
	return &c
}

// Equal reports position equality: occupancy, side to move, castling
// rights, en-passant target and the move clocks. Per-piece move counters
// and histories are bookkeeping, not position, and are not compared.
func (b *Board) Equal(o *Board) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p, q := b.squares[y][x], o.squares[y][x]
			if p.Type != q.Type || p.Color != q.Color {
				return false
			}
		}
	}
	if b.hasEP != o.hasEP || (b.hasEP && b.epTarget != o.epTarget) {
		return false
	}
	return b.toMove == o.toMove && b.rights == o.rights &&
		b.halfmove == o.halfmove && b.fullmove == o.fullmove
}
