package service

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/aldenpark/chessmate-backend/internal/engine"
	"github.com/aldenpark/chessmate-backend/internal/ws"
)

// connRegistry holds the live sockets for one game, keyed by player ID.
// Spectators get entries too.
type connRegistry struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

func newConnRegistry() *connRegistry {
	return &connRegistry{conns: make(map[string]*websocket.Conn)}
}

// GameSession binds one game to its seats, clocks, and connections.
type GameSession struct {
	ID string

	mu       sync.Mutex
	game     *engine.Game
	white    string
	black    string
	lastMove *LastMove

	// moves played before this process picked the game up from the
	// store; the engine history only covers moves made since
	priorMoves []string

	whiteClock *Clock
	blackClock *Clock

	conns *connRegistry
	log   *zap.Logger
}

func NewGameSession(id string, clockTime time.Duration, log *zap.Logger) *GameSession {
	return &GameSession{
		ID:         id,
		game:       engine.NewGame(),
		whiteClock: NewClock(clockTime),
		blackClock: NewClock(clockTime),
		conns:      newConnRegistry(),
		log:        log.With(zap.String("game_id", id)),
	}
}

// NewGameSessionFromFEN starts a session from an arbitrary position.
func NewGameSessionFromFEN(id, fen string, clockTime time.Duration, log *zap.Logger) (*GameSession, error) {
	game, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return nil, err
	}
	s := NewGameSession(id, clockTime, log)
	s.game = game
	return s, nil
}

// AddPlayer seats playerID on the first open side, white before black.
func (s *GameSession) AddPlayer(playerID string) (engine.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.white == "" && s.black != playerID:
		s.white = playerID
		return engine.White, nil
	case s.black == "" && s.white != playerID:
		s.black = playerID
		return engine.Black, nil
	case s.white == playerID:
		return engine.White, nil
	case s.black == playerID:
		return engine.Black, nil
	}
	return "", ErrGameFull
}

func (s *GameSession) seatColor(playerID string) (engine.Color, bool) {
	if playerID != "" && playerID == s.white {
		return engine.White, true
	}
	if playerID != "" && playerID == s.black {
		return engine.Black, true
	}
	return "", false
}

// IsPlayerInGame reports whether playerID holds a seat.
func (s *GameSession) IsPlayerInGame(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seatColor(playerID)
	return ok
}

// MakeMove plays req for playerID. Engine rejections pass through
// unchanged so callers can map them; ErrAmbiguousPromotion leaves the
// pair pending for CompletePromotion.
func (s *GameSession) MakeMove(playerID string, req MoveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, seated := s.seatColor(playerID)
	if !seated {
		return ErrNotSeated
	}
	if color != s.game.ToMove() {
		return ErrNotYourTurn
	}
	promotion, ok := engine.PromotionTypeFromLetter(req.Promotion)
	if !ok {
		return engine.ErrIllegalMove
	}

	if err := s.game.RequestMove(req.From, req.To, promotion); err != nil {
		if errors.Is(err, engine.ErrAmbiguousPromotion) {
			// Held for a follow-up choice; show clients the pending pair.
			go s.broadcastState()
		}
		return err
	}

	s.lastMove = &LastMove{From: req.From, To: req.To}
	s.punchClocks(color)
	go s.broadcastState()
	return nil
}

// CompletePromotion finishes a held promotion with the given letter.
func (s *GameSession) CompletePromotion(playerID, letter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, seated := s.seatColor(playerID)
	if !seated {
		return ErrNotSeated
	}
	if color != s.game.ToMove() {
		return ErrNotYourTurn
	}
	promotion, ok := engine.PromotionTypeFromLetter(letter)
	if !ok || promotion == "" {
		return engine.ErrIllegalMove
	}
	from, to, pending := s.game.PendingPromotion()
	if !pending {
		return engine.ErrIllegalMove
	}

	if err := s.game.CompletePromotion(promotion); err != nil {
		return err
	}

	s.lastMove = &LastMove{From: from, To: to}
	s.punchClocks(color)
	go s.broadcastState()
	return nil
}

// punchClocks stops the mover's clock and, unless the game ended, starts
// the opponent's. Caller holds s.mu.
func (s *GameSession) punchClocks(mover engine.Color) {
	moverClock, otherClock := s.whiteClock, s.blackClock
	if mover == engine.Black {
		moverClock, otherClock = s.blackClock, s.whiteClock
	}
	moverClock.Stop()
	if !s.game.IsOver() {
		otherClock.Start()
	}
}

// State builds the client-facing snapshot.
func (s *GameSession) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *GameSession) stateLocked() GameState {
	board := s.game.Board()

	var st GameState
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := board.PieceAt(engine.Sq(x, y))
			if !p.IsEmpty() {
				pc := p
				st.Board[y][x] = &pc
			}
		}
	}
	st.ToMove = s.game.ToMove()
	st.IsCheck = s.game.InCheck()
	st.Status = s.game.Status()
	if winner, ok := s.game.Winner(); ok {
		w := winner
		st.Winner = &w
	}
	st.LegalMoves = s.game.LegalMoves()
	if ep, ok := board.EnPassantTarget(); ok {
		sq := ep
		st.EnPassantTarget = &sq
	}
	if from, to, ok := s.game.PendingPromotion(); ok {
		st.PendingPromo = &PendingPromotion{From: from, To: to}
	}
	st.LastMove = s.lastMove
	st.FEN = s.game.FEN()
	st.Players.White = ClientPlayer{
		ID:       s.white,
		Color:    string(engine.White),
		TimeLeft: int(s.whiteClock.TimeLeft().Milliseconds() / 100),
	}
	st.Players.Black = ClientPlayer{
		ID:       s.black,
		Color:    string(engine.Black),
		TimeLeft: int(s.blackClock.TimeLeft().Milliseconds() / 100),
	}
	return st
}

// Record builds the durable snapshot persisted after each move.
func (s *GameSession) Record() (fen, status, white, black string, moves []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moves = append(moves, s.priorMoves...)
	for _, rec := range s.game.History() {
		moves = append(moves, rec.Move.String())
	}
	return s.game.FEN(), string(s.game.Status()), s.white, s.black, moves
}

// RegisterConnection attaches a socket for playerID and pushes the
// current state to everyone. Unseated players connect as spectators. A
// second socket for the same player is rejected in favor of the
// existing one.
func (s *GameSession) RegisterConnection(playerID string, conn *websocket.Conn) error {
	s.conns.mu.Lock()
	if _, exists := s.conns.conns[playerID]; exists {
		s.conns.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	s.conns.conns[playerID] = conn
	s.conns.mu.Unlock()

	s.log.Debug("connection registered", zap.String("player_id", playerID))
	go s.broadcastState()
	return nil
}

func (s *GameSession) UnregisterConnection(playerID string) {
	s.conns.mu.Lock()
	defer s.conns.mu.Unlock()
	delete(s.conns.conns, playerID)
}

// broadcastState sends the current snapshot to every live socket,
// dropping sockets that fail to write.
func (s *GameSession) broadcastState() {
	s.mu.Lock()
	state := s.stateLocked()
	s.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		s.log.Error("marshal game state", zap.Error(err))
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	s.conns.mu.Lock()
	defer s.conns.mu.Unlock()
	for playerID, conn := range s.conns.conns {
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Warn("drop connection after failed write",
				zap.String("player_id", playerID), zap.Error(err))
			delete(s.conns.conns, playerID)
		}
	}
}
