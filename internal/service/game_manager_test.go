package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aldenpark/chessmate-backend/internal/engine"
	"github.com/aldenpark/chessmate-backend/internal/store"
)

func testManager(t *testing.T) (*GameManager, *store.MemoryRepository) {
	t.Helper()
	repo := store.NewMemoryRepository()
	return NewGameManager(repo, 10*time.Minute, zap.NewNop()), repo
}

func TestCreateAndJoinGame(t *testing.T) {
	gm, _ := testManager(t)

	if err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gm.CreateGame("g1"); !errors.Is(err, ErrGameExists) {
		t.Fatalf("duplicate CreateGame: err = %v, want ErrGameExists", err)
	}

	color, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil || color != engine.White {
		t.Fatalf("AddPlayerToGame = %v, %v", color, err)
	}
	if _, err := gm.AddPlayerToGame("missing", "bob"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("join missing game: err = %v, want ErrGameNotFound", err)
	}

	st, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if st.Players.White.ID != "alice" {
		t.Errorf("white seat = %q, want alice", st.Players.White.ID)
	}

	moves, err := gm.GetLegalMoves("g1")
	if err != nil {
		t.Fatalf("GetLegalMoves: %v", err)
	}
	if len(moves) != 20 {
		t.Errorf("initial legal moves = %d, want 20", len(moves))
	}
}

func TestMakeMovePersists(t *testing.T) {
	gm, repo := testManager(t)
	if err := gm.CreateGame("g1"); err != nil {
		t.Fatal(err)
	}
	if _, err := gm.AddPlayerToGame("g1", "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := gm.AddPlayerToGame("g1", "bob"); err != nil {
		t.Fatal(err)
	}

	if err := gm.MakeMove("g1", "alice", MoveRequest{From: engine.Sq(4, 6), To: engine.Sq(4, 4)}); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}

	// Persistence runs on its own goroutine; run it again synchronously
	// so the assertion does not race.
	session, err := gm.getSession("g1")
	if err != nil {
		t.Fatal(err)
	}
	gm.persist(session)

	rec, err := repo.Get(context.Background(), "g1")
	if err != nil {
		t.Fatalf("repo.Get: %v", err)
	}
	if rec.WhitePlayer != "alice" || rec.BlackPlayer != "bob" {
		t.Errorf("record seats = %q, %q", rec.WhitePlayer, rec.BlackPlayer)
	}
	if len(rec.Moves) != 1 || rec.Moves[0] != "e2e4" {
		t.Errorf("record moves = %v", rec.Moves)
	}
	if rec.FEN != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Errorf("record fen = %q", rec.FEN)
	}
}

func TestSessionRestoredFromStore(t *testing.T) {
	repo := store.NewMemoryRepository()
	gm1 := NewGameManager(repo, 10*time.Minute, zap.NewNop())
	if err := gm1.CreateGame("g1"); err != nil {
		t.Fatal(err)
	}
	if _, err := gm1.AddPlayerToGame("g1", "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := gm1.AddPlayerToGame("g1", "bob"); err != nil {
		t.Fatal(err)
	}
	if err := gm1.MakeMove("g1", "alice", MoveRequest{From: engine.Sq(4, 6), To: engine.Sq(4, 4)}); err != nil {
		t.Fatal(err)
	}
	session, err := gm1.getSession("g1")
	if err != nil {
		t.Fatal(err)
	}
	gm1.persist(session)

	// A second manager sharing the repository picks the game up mid-play.
	gm2 := NewGameManager(repo, 10*time.Minute, zap.NewNop())
	st, err := gm2.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState after restart: %v", err)
	}
	if st.ToMove != engine.Black {
		t.Errorf("restored ToMove = %v, want black", st.ToMove)
	}
	if st.Players.White.ID != "alice" || st.Players.Black.ID != "bob" {
		t.Errorf("restored seats = %+v", st.Players)
	}

	// Play on and confirm the persisted history keeps the prior moves.
	if err := gm2.MakeMove("g1", "bob", MoveRequest{From: engine.Sq(4, 1), To: engine.Sq(4, 3)}); err != nil {
		t.Fatalf("move after restore: %v", err)
	}
	restored, err := gm2.getSession("g1")
	if err != nil {
		t.Fatal(err)
	}
	gm2.persist(restored)
	rec, err := repo.Get(context.Background(), "g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Moves) != 2 || rec.Moves[0] != "e2e4" || rec.Moves[1] != "e7e5" {
		t.Errorf("persisted moves after restore = %v", rec.Moves)
	}
}

func TestCreateGameFromFEN(t *testing.T) {
	gm, _ := testManager(t)

	if err := gm.CreateGameFromFEN("bad", "not a position"); err == nil {
		t.Fatal("expected error for malformed position")
	}
	if _, err := gm.getSession("bad"); !errors.Is(err, ErrGameNotFound) {
		t.Fatal("malformed position left a session behind")
	}

	fen := "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	if err := gm.CreateGameFromFEN("stale", fen); err != nil {
		t.Fatalf("CreateGameFromFEN: %v", err)
	}
	st, err := gm.GetGameState("stale")
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != engine.StatusStalemate {
		t.Errorf("Status = %v, want stalemate", st.Status)
	}
}

func TestMatchmakingPairsLongestWaiting(t *testing.T) {
	gm, _ := testManager(t)

	ch1 := make(chan string, 1)
	ch2 := make(chan string, 1)
	gm.RegisterMatchmakingChannel("p1", ch1)
	gm.RegisterMatchmakingChannel("p2", ch2)

	if err := gm.JoinMatchmaking("p1"); err != nil {
		t.Fatal(err)
	}
	if err := gm.JoinMatchmaking("p1"); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("double queue: err = %v, want ErrAlreadyQueued", err)
	}

	gm.matchOnce() // only one player waiting
	if gm.queue.Size() != 1 {
		t.Fatalf("queue size = %d after no-op pairing", gm.queue.Size())
	}

	if err := gm.JoinMatchmaking("p2"); err != nil {
		t.Fatal(err)
	}
	gm.matchOnce()

	readEvent := func(ch chan string) MatchFoundEvent {
		t.Helper()
		select {
		case payload, ok := <-ch:
			if !ok {
				t.Fatal("channel closed without event")
			}
			var ev MatchFoundEvent
			if err := json.Unmarshal([]byte(payload), &ev); err != nil {
				t.Fatalf("decode event: %v", err)
			}
			return ev
		case <-time.After(time.Second):
			t.Fatal("no match event received")
		}
		return MatchFoundEvent{}
	}

	ev1 := readEvent(ch1)
	ev2 := readEvent(ch2)
	if ev1.GameID == "" || ev1.GameID != ev2.GameID {
		t.Fatalf("game ids differ: %q vs %q", ev1.GameID, ev2.GameID)
	}
	if ev1.Color != engine.White || ev2.Color != engine.Black {
		t.Errorf("colors = %v, %v; want white, black", ev1.Color, ev2.Color)
	}

	st, err := gm.GetGameState(ev1.GameID)
	if err != nil {
		t.Fatalf("matched game missing: %v", err)
	}
	if st.Players.White.ID != "p1" || st.Players.Black.ID != "p2" {
		t.Errorf("matched seats = %+v", st.Players)
	}
}

func TestReplacedMatchmakingChannelIsClosed(t *testing.T) {
	gm, _ := testManager(t)

	old := make(chan string, 1)
	gm.RegisterMatchmakingChannel("p1", old)
	gm.RegisterMatchmakingChannel("p1", make(chan string, 1))

	select {
	case _, ok := <-old:
		if ok {
			t.Fatal("replaced channel received an event")
		}
	default:
		t.Fatal("replaced channel not closed")
	}
}

func TestUnregisterMatchmakingLeavesQueue(t *testing.T) {
	gm, _ := testManager(t)

	gm.RegisterMatchmakingChannel("p1", make(chan string, 1))
	if err := gm.JoinMatchmaking("p1"); err != nil {
		t.Fatal(err)
	}
	gm.UnregisterMatchmakingChannel("p1")
	if gm.queue.Size() != 0 {
		t.Errorf("queue size = %d after unregister, want 0", gm.queue.Size())
	}
}

func TestQueueOrdering(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(id); err != nil {
			t.Fatal(err)
		}
	}
	first, second, ok := q.NextPair()
	if !ok || first != "a" || second != "b" {
		t.Fatalf("NextPair = %q, %q, %v", first, second, ok)
	}
	if _, _, ok := q.NextPair(); ok {
		t.Fatal("NextPair succeeded with one player queued")
	}
	q.RemovePlayer("c")
	if q.Size() != 0 {
		t.Errorf("Size = %d after removal", q.Size())
	}
}
