package engine

import "errors"

// Rejections returned to callers. Every one of them leaves the board
// untouched; the caller re-prompts and tries again.
var (
	// ErrNoPieceAtSource rejects a move requested from an empty square.
	ErrNoPieceAtSource = errors.New("no piece at source square")
	// ErrWrongSideToMove rejects moving a piece of the side not to move.
	ErrWrongSideToMove = errors.New("piece belongs to the side not to move")
	// ErrIllegalMove rejects a target outside the legal move set:
	// geometry violation, self-check, blocked or attacked castling path,
	// or an expired en-passant window.
	ErrIllegalMove = errors.New("move is not in the legal move set")
	// ErrAmbiguousPromotion flags a back-rank pawn move submitted
	// without a promotion choice; complete it via CompletePromotion.
	ErrAmbiguousPromotion = errors.New("promotion piece required")
	// ErrGameAlreadyOver rejects moves after checkmate or stalemate.
	ErrGameAlreadyOver = errors.New("game is already over")
	// ErrInvalidPositionNotation wraps all notation import failures.
	ErrInvalidPositionNotation = errors.New("invalid position notation")
)
