package engine

// Status is the terminal-state evaluation for the side to move.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// Game owns a Board exclusively and sequences turns: it validates move
// requests against the current legal set, commits accepted moves with
// their full side effects, and re-evaluates check and terminal state.
// It is not safe for concurrent use; callers serialize requests.
type Game struct {
	board  *Board
	legal  []Move
	check  bool
	status Status

	// promotion continuation: a from/to pair rejected with
	// ErrAmbiguousPromotion waits here for a piece choice
	pendingFrom, pendingTo Square
	hasPending             bool
}

// NewGame starts from the standard initial position.
func NewGame() *Game {
	g := &Game{board: NewBoard()}
	g.refresh()
	return g
}

// NewGameFromFEN starts from an imported position.
func NewGameFromFEN(fen string) (*Game, error) {
	b, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{board: b}
	g.refresh()
	return g, nil
}

// refresh recomputes the cached legal move set, check flag and terminal
// status for the side to move. Zero legal moves ends the game: checkmate
// when that side is in check, stalemate otherwise.
func (g *Game) refresh() {
	g.legal = g.board.LegalMoves(g.board.toMove)
	g.check = g.board.IsInCheck(g.board.toMove)
	switch {
	case len(g.legal) > 0:
		g.status = StatusOngoing
	case g.check:
		g.status = StatusCheckmate
	default:
		g.status = StatusStalemate
	}
}

// RequestMove validates and commits a (from, to) request for the side to
// move. promotion may be empty unless the move reaches the back rank, in
// which case an empty choice is rejected with ErrAmbiguousPromotion and
// the pair is held for CompletePromotion. Rejections mutate nothing.
func (g *Game) RequestMove(from, to Square, promotion PieceType) error {
	if g.status != StatusOngoing {
		return ErrGameAlreadyOver
	}
	if !from.InBounds() || !to.InBounds() {
		return ErrIllegalMove
	}
	p := g.board.PieceAt(from)
	if p.IsEmpty() {
		return ErrNoPieceAtSource
	}
	if p.Color != g.board.toMove {
		return ErrWrongSideToMove
	}

	candidates := []Move{}
	for _, m := range g.legal {
		if m.From == from && m.To == to {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return ErrIllegalMove
	}

	chosen := candidates[0]
	if chosen.isPromotion() {
		if promotion == "" {
			g.pendingFrom, g.pendingTo, g.hasPending = from, to, true
			return ErrAmbiguousPromotion
		}
		found := false
		for _, m := range candidates {
			if m.Promotion == promotion {
				chosen, found = m, true
				break
			}
		}
		if !found {
			return ErrIllegalMove
		}
	}

	g.hasPending = false
	g.board.applyMove(chosen)
	g.refresh()
	return nil
}

// CompletePromotion finishes the move most recently rejected with
// ErrAmbiguousPromotion using the supplied piece choice.
func (g *Game) CompletePromotion(promotion PieceType) error {
	if !g.hasPending {
		return ErrIllegalMove
	}
	return g.RequestMove(g.pendingFrom, g.pendingTo, promotion)
}

// PendingPromotion exposes the from/to pair awaiting a promotion choice.
func (g *Game) PendingPromotion() (from, to Square, ok bool) {
	return g.pendingFrom, g.pendingTo, g.hasPending
}

// Board returns an independent snapshot of the position.
func (g *Game) Board() *Board { return g.board.Clone() }

// LegalMoves returns a copy of the current legal move set for the side
// to move, for external highlighting and validation.
func (g *Game) LegalMoves() []Move {
	out := make([]Move, len(g.legal))
	copy(out, g.legal)
	return out
}

func (g *Game) ToMove() Color     { return g.board.toMove }
func (g *Game) InCheck() bool     { return g.check }
func (g *Game) Status() Status    { return g.status }
func (g *Game) IsOver() bool      { return g.status != StatusOngoing }
func (g *Game) FEN() string       { return g.board.FEN() }
func (g *Game) History() []Record { return g.board.History() }

// Winner names the side that delivered checkmate; ok is false while the
// game is running or drawn.
func (g *Game) Winner() (Color, bool) {
	if g.status != StatusCheckmate {
		return "", false
	}
	return g.board.toMove.Opposite(), true
}
