package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func sampleRecord() GameRecord {
	return GameRecord{
		ID:          "g1",
		FEN:         "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Status:      "ongoing",
		WhitePlayer: "alice",
		BlackPlayer: "bob",
		Moves:       []string{"e2e4", "e7e5"},
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func testRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Save: err = %v, want ErrNotFound", err)
	}

	want := sampleRecord()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FEN != want.FEN || got.Status != want.Status ||
		got.WhitePlayer != want.WhitePlayer || got.BlackPlayer != want.BlackPlayer {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
	if len(got.Moves) != 2 || got.Moves[0] != "e2e4" || got.Moves[1] != "e7e5" {
		t.Errorf("Moves = %v, want [e2e4 e7e5]", got.Moves)
	}

	// Overwrite replaces the record.
	want.FEN = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2"
	want.Moves = append(want.Moves, "g1f3")
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save (overwrite): %v", err)
	}
	got, err = repo.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if got.FEN != want.FEN || len(got.Moves) != 3 {
		t.Errorf("overwrite not applied: %+v", got)
	}

	if err := repo.Delete(ctx, "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete: err = %v, want ErrNotFound", err)
	}
	// Deleting a missing record is not an error.
	if err := repo.Delete(ctx, "g1"); err != nil {
		t.Fatalf("Delete (missing): %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	testRepository(t, NewMemoryRepository())
}

func TestRedisRepository(t *testing.T) {
	srv := miniredis.RunT(t)
	repo, err := NewRedisRepository(context.Background(), srv.Addr())
	if err != nil {
		t.Fatalf("NewRedisRepository: %v", err)
	}
	defer repo.Close()
	testRepository(t, repo)
}

func TestRedisRepositorySetsTTL(t *testing.T) {
	srv := miniredis.RunT(t)
	repo, err := NewRedisRepository(context.Background(), srv.Addr())
	if err != nil {
		t.Fatalf("NewRedisRepository: %v", err)
	}
	defer repo.Close()

	if err := repo.Save(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ttl := srv.TTL("game:g1"); ttl != recordTTL {
		t.Errorf("TTL = %v, want %v", ttl, recordTTL)
	}
	srv.FastForward(recordTTL + time.Minute)
	if _, err := repo.Get(context.Background(), "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after expiry: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepositoryCopiesMoves(t *testing.T) {
	repo := NewMemoryRepository()
	rec := sampleRecord()
	if err := repo.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	rec.Moves[0] = "mutated"

	got, err := repo.Get(context.Background(), "g1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Moves[0] != "e2e4" {
		t.Errorf("stored record shares caller slice: Moves[0] = %q", got.Moves[0])
	}
}
