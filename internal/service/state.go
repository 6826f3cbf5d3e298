package service

import (
	"github.com/aldenpark/chessmate-backend/internal/engine"
)

// MoveRequest is the client's move payload, shared by the REST and
// WebSocket surfaces. Promotion is a lowercase piece letter ("q", "r",
// "b", "n") or empty.
type MoveRequest struct {
	From      engine.Square `json:"from"`
	To        engine.Square `json:"to"`
	Promotion string        `json:"promotion,omitempty"`
}

// ClientPlayer is one seat as shown to clients. TimeLeft is in tenths
// of a second.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

type LastMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

type PendingPromotion struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

// GameState is the full client-facing snapshot of a game. Board cells
// are nil where empty.
type GameState struct {
	Board           [8][8]*engine.Piece `json:"board"`
	ToMove          engine.Color        `json:"toMove"`
	IsCheck         bool                `json:"isCheck"`
	Status          engine.Status       `json:"status"`
	Winner          *engine.Color       `json:"winner"`
	LegalMoves      []engine.Move       `json:"legalMoves"`
	EnPassantTarget *engine.Square      `json:"enPassantTarget"`
	PendingPromo    *PendingPromotion   `json:"pendingPromotion"`
	LastMove        *LastMove           `json:"lastMove"`
	FEN             string              `json:"fen"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// MatchFoundEvent tells a queued player which game they were paired
// into and which side they got.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}
