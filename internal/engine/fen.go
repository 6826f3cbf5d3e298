package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(ch rune) (Piece, bool) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else {
		lower = ch + ('a' - 'A')
	}
	var t PieceType
	switch lower {
	case 'p':
		t = Pawn
	case 'n':
		t = Knight
	case 'b':
		t = Bishop
	case 'r':
		t = Rook
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return Piece{}, false
	}
	return Piece{Type: t, Color: color}, true
}

func charFromPiece(p Piece) byte {
	var ch byte
	switch p.Type {
	case Pawn:
		ch = 'p'
	case Knight:
		ch = 'n'
	case Bishop:
		ch = 'b'
	case Rook:
		ch = 'r'
	case Queen:
		ch = 'q'
	case King:
		ch = 'k'
	}
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ParseFEN builds a Board from position notation. Only the placement
// field is mandatory; side to move, castling rights, en-passant target,
// half-move clock and full-move number default when absent (white,
// rights consistent with the placement, none, 0, 1).
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPositionNotation)
	}

	b := &Board{toMove: White, fullmove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidPositionNotation, len(ranks))
	}
	var whiteKings, blackKings int
	for y, rank := range ranks {
		x := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				x += int(ch - '0')
				continue
			}
			p, ok := pieceFromChar(ch)
			if !ok {
				return nil, fmt.Errorf("%w: bad piece character %q", ErrInvalidPositionNotation, ch)
			}
			if x >= 8 {
				return nil, fmt.Errorf("%w: rank %d overflows 8 files", ErrInvalidPositionNotation, 8-y)
			}
			sq := Square{X: x, Y: y}
			if p.Type == King {
				if p.Color == White {
					b.whiteKing = sq
					whiteKings++
				} else {
					b.blackKing = sq
					blackKings++
				}
			}
			b.setPiece(sq, p)
			x++
		}
		if x != 8 {
			return nil, fmt.Errorf("%w: rank %d sums to %d files", ErrInvalidPositionNotation, 8-y, x)
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("%w: need exactly one king per color", ErrInvalidPositionNotation)
	}

	if len(fields) > 1 {
		switch fields[1] {
		case "w":
			b.toMove = White
		case "b":
			b.toMove = Black
		default:
			return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidPositionNotation, fields[1])
		}
	}

	if len(fields) > 2 {
		rights, err := parseCastlingField(fields[2])
		if err != nil {
			return nil, err
		}
		b.rights = rights
	} else {
		b.rights = b.inferredRights()
	}

	if len(fields) > 3 && fields[3] != "-" {
		sq, ok := parseSquare(fields[3])
		if !ok {
			return nil, fmt.Errorf("%w: bad en-passant square %q", ErrInvalidPositionNotation, fields[3])
		}
		b.epTarget, b.hasEP = sq, true
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad half-move clock %q", ErrInvalidPositionNotation, fields[4])
		}
		b.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad full-move number %q", ErrInvalidPositionNotation, fields[5])
		}
		b.fullmove = n
	}

	b.synthesizeMoveCounts()
	return b, nil
}

func parseCastlingField(field string) (CastlingRights, error) {
	var rights CastlingRights
	if field == "-" {
		return rights, nil
	}
	for _, ch := range field {
		switch ch {
		case 'K':
			rights.WhiteKingside = true
		case 'Q':
			rights.WhiteQueenside = true
		case 'k':
			rights.BlackKingside = true
		case 'q':
			rights.BlackQueenside = true
		default:
			return rights, fmt.Errorf("%w: bad castling flag %q", ErrInvalidPositionNotation, ch)
		}
	}
	return rights, nil
}

// inferredRights grants a right wherever the king and the corresponding
// rook still stand on their home squares; used when a placement-only
// import carries no castling field.
func (b *Board) inferredRights() CastlingRights {
	var rights CastlingRights
	if p := b.PieceAt(Square{X: 4, Y: 7}); p.Type == King && p.Color == White {
		rights.WhiteKingside = b.cornerRook(Square{X: 7, Y: 7}, White)
		rights.WhiteQueenside = b.cornerRook(Square{X: 0, Y: 7}, White)
	}
	if p := b.PieceAt(Square{X: 4, Y: 0}); p.Type == King && p.Color == Black {
		rights.BlackKingside = b.cornerRook(Square{X: 7, Y: 0}, Black)
		rights.BlackQueenside = b.cornerRook(Square{X: 0, Y: 0}, Black)
	}
	return rights
}

// synthesizeMoveCounts marks pieces standing off their home squares as
// moved, so double-push conditions derived from per-piece move counters
// stay truthful for imported positions.
func (b *Board) synthesizeMoveCounts() {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if p.IsEmpty() {
				continue
			}
			if !onHomeSquare(p, Square{X: x, Y: y}) {
				p.MoveCount = 1
				b.squares[y][x] = p
			}
		}
	}
}

func onHomeSquare(p Piece, sq Square) bool {
	backRank, pawnRank := 0, 1
	if p.Color == White {
		backRank, pawnRank = 7, 6
	}
	switch p.Type {
	case Pawn:
		return sq.Y == pawnRank
	case Rook:
		return sq.Y == backRank && (sq.X == 0 || sq.X == 7)
	case Knight:
		return sq.Y == backRank && (sq.X == 1 || sq.X == 6)
	case Bishop:
		return sq.Y == backRank && (sq.X == 2 || sq.X == 5)
	case Queen:
		return sq.Y == backRank && sq.X == 3
	case King:
		return sq.Y == backRank && sq.X == 4
	}
	return false
}

// FEN serializes the position in full six-field notation. Parsing the
// result reproduces the position exactly.
func (b *Board) FEN() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < 8; x++ {
			p := b.squares[y][x]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	side := "w"
	if b.toMove == Black {
		side = "b"
	}

	castle := ""
	if b.rights.WhiteKingside {
		castle += "K"
	}
	if b.rights.WhiteQueenside {
		castle += "Q"
	}
	if b.rights.BlackKingside {
		castle += "k"
	}
	if b.rights.BlackQueenside {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}

	ep := "-"
	if b.hasEP {
		ep = b.epTarget.Notation()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), side, castle, ep, b.halfmove, b.fullmove)
}
