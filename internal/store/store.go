// Package store persists game snapshots so sessions survive restarts.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("store: game not found")

// GameRecord is the durable snapshot of a game. Moves are long algebraic
// strings in play order; FEN is the current position.
type GameRecord struct {
	ID          string    `json:"id"`
	FEN         string    `json:"fen"`
	Status      string    `json:"status"`
	WhitePlayer string    `json:"whitePlayer,omitempty"`
	BlackPlayer string    `json:"blackPlayer,omitempty"`
	Moves       []string  `json:"moves,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Repository interface {
	Save(ctx context.Context, rec GameRecord) error
	Get(ctx context.Context, id string) (GameRecord, error)
	Delete(ctx context.Context, id string) error
}
