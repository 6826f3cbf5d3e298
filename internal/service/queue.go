package service

import (
	"sync"
	"time"
)

type queuedPlayer struct {
	playerID string
	joinedAt time.Time
}

// Queue is the matchmaking waiting list, ordered by join time.
type Queue struct {
	mu      sync.Mutex
	players []queuedPlayer
}

func NewQueue() *Queue {
	return &Queue{players: []queuedPlayer{}}
}

func (q *Queue) AddPlayer(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.playerID == playerID {
			return ErrAlreadyQueued
		}
	}
	q.players = append(q.players, queuedPlayer{playerID: playerID, joinedAt: time.Now()})
	return nil
}

func (q *Queue) RemovePlayer(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.playerID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return
		}
	}
}

// NextPair pops the two longest-waiting players. ok is false when fewer
// than two players are queued.
func (q *Queue) NextPair() (first, second string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return "", "", false
	}
	first, second = q.players[0].playerID, q.players[1].playerID
	q.players = q.players[2:]
	return first, second, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
