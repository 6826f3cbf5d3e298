package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aldenpark/chessmate-backend/internal/engine"
	"github.com/aldenpark/chessmate-backend/internal/store"
)

const persistTimeout = 3 * time.Second

// GameManager owns every live session, runs matchmaking, and persists
// snapshots through the repository after each state change.
type GameManager struct {
	mu               sync.RWMutex
	sessions         map[string]*GameSession
	queue            *Queue
	matchingChannels map[string]chan string

	repo      store.Repository
	clockTime time.Duration
	log       *zap.Logger
}

func NewGameManager(repo store.Repository, clockTime time.Duration, log *zap.Logger) *GameManager {
	gm := &GameManager{
		sessions:         make(map[string]*GameSession),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan string),
		repo:             repo,
		clockTime:        clockTime,
		log:              log,
	}
	go gm.matchmakingLoop()
	return gm
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return ErrGameExists
	}
	session := NewGameSession(gameID, gm.clockTime, gm.log)
	gm.sessions[gameID] = session
	go gm.persist(session)
	return nil
}

// CreateGameFromFEN starts a game from an arbitrary position.
func (gm *GameManager) CreateGameFromFEN(gameID, fen string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return ErrGameExists
	}
	session, err := NewGameSessionFromFEN(gameID, fen, gm.clockTime, gm.log)
	if err != nil {
		return err
	}
	gm.sessions[gameID] = session
	go gm.persist(session)
	return nil
}

func (gm *GameManager) getSession(gameID string) (*GameSession, error) {
	gm.mu.RLock()
	session, exists := gm.sessions[gameID]
	gm.mu.RUnlock()
	if exists {
		return session, nil
	}
	return gm.restoreSession(gameID)
}

// restoreSession rebuilds a session from its persisted snapshot, so
// games survive a restart when a durable repository is configured.
// Clocks restart at the full allotment; elapsed time is not persisted.
func (gm *GameManager) restoreSession(gameID string) (*GameSession, error) {
	if gm.repo == nil {
		return nil, ErrGameNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	rec, err := gm.repo.Get(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	session, err := NewGameSessionFromFEN(gameID, rec.FEN, gm.clockTime, gm.log)
	if err != nil {
		return nil, err
	}
	session.white, session.black = rec.WhitePlayer, rec.BlackPlayer
	session.priorMoves = rec.Moves

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if existing, exists := gm.sessions[gameID]; exists {
		return existing, nil
	}
	gm.sessions[gameID] = session
	gm.log.Info("session restored from store", zap.String("game_id", gameID))
	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (engine.Color, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return "", err
	}
	color, err := session.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	go gm.persist(session)
	return color, nil
}

func (gm *GameManager) GetGameState(gameID string) (GameState, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.State(), nil
}

func (gm *GameManager) GetLegalMoves(gameID string) ([]engine.Move, error) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return nil, err
	}
	return session.State().LegalMoves, nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, req MoveRequest) error {
	session, err := gm.getSession(gameID)
	if err != nil {
		return err
	}
	if err := session.MakeMove(playerID, req); err != nil {
		return err
	}
	go gm.persist(session)
	return nil
}

func (gm *GameManager) CompletePromotion(gameID, playerID, letter string) error {
	session, err := gm.getSession(gameID)
	if err != nil {
		return err
	}
	if err := session.CompletePromotion(playerID, letter); err != nil {
		return err
	}
	go gm.persist(session)
	return nil
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	session, err := gm.getSession(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	session, err := gm.getSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(playerID)
}

// RegisterMatchmakingChannel installs the channel a queued player waits
// on. An earlier channel for the same player is closed and replaced.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel removes the channel without closing it;
// the creator owns its lifetime.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
	gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) matchmakingLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.matchOnce()
	}
}

// matchOnce pairs the two longest-waiting players into a fresh game and
// notifies them through their matchmaking channels.
func (gm *GameManager) matchOnce() {
	first, second, ok := gm.queue.NextPair()
	if !ok {
		return
	}

	gameID := uuid.New().String()
	session := NewGameSession(gameID, gm.clockTime, gm.log)

	firstColor, err := session.AddPlayer(first)
	if err != nil {
		gm.log.Error("seat matched player", zap.String("player_id", first), zap.Error(err))
		return
	}
	secondColor, err := session.AddPlayer(second)
	if err != nil {
		gm.log.Error("seat matched player", zap.String("player_id", second), zap.Error(err))
		return
	}

	gm.mu.Lock()
	gm.sessions[gameID] = session
	sent1 := gm.notifyMatchLocked(first, MatchFoundEvent{GameID: gameID, Color: firstColor})
	sent2 := gm.notifyMatchLocked(second, MatchFoundEvent{GameID: gameID, Color: secondColor})
	gm.mu.Unlock()

	if !sent1 || !sent2 {
		gm.log.Warn("match created but not all players notified",
			zap.String("game_id", gameID))
	}
	gm.log.Info("match created",
		zap.String("game_id", gameID),
		zap.String("white", first),
		zap.String("black", second))
	go gm.persist(session)
}

// notifyMatchLocked sends event down the player's channel and retires
// the channel. Caller holds gm.mu.
func (gm *GameManager) notifyMatchLocked(playerID string, event MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	payload, err := json.Marshal(event)
	if err != nil {
		gm.log.Error("marshal match event", zap.Error(err))
		return false
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
		return true
	default:
		return false
	}
}

func (gm *GameManager) persist(session *GameSession) {
	if gm.repo == nil {
		return
	}
	fen, status, white, black, moves := session.Record()
	rec := store.GameRecord{
		ID:          session.ID,
		FEN:         fen,
		Status:      status,
		WhitePlayer: white,
		BlackPlayer: black,
		Moves:       moves,
		UpdatedAt:   time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := gm.repo.Save(ctx, rec); err != nil {
		gm.log.Error("persist game", zap.String("game_id", session.ID), zap.Error(err))
	}
}
