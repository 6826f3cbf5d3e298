package engine

import "testing"

func perftCase(t *testing.T, fen string, depth int, want uint64) {
	t.Helper()
	b := mustParse(t, fen)
	if got := Perft(b, depth); got != want {
		t.Errorf("perft(%q, %d): got %d want %d", fen, depth, got, want)
	}
	// perft applies and undoes on the live board; it must come back clean
	if got := b.FEN(); got != fen {
		t.Errorf("perft left the board dirty: %q", got)
	}
}

func TestPerftInitialPosition(t *testing.T) {
	perftCase(t, StartFEN, 1, 20)
	perftCase(t, StartFEN, 2, 400)
	perftCase(t, StartFEN, 3, 8902)
}

func TestPerftInitialDeep(t *testing.T) {
	perftCase(t, StartFEN, 4, 197281)
	if testing.Short() {
		t.Skip("skipping depth 5 perft in short mode")
	}
	perftCase(t, StartFEN, 5, 4865609)
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	perftCase(t, fen, 1, 48)
	perftCase(t, fen, 2, 2039)
	if testing.Short() {
		t.Skip("skipping Kiwipete depth 3 in short mode")
	}
	perftCase(t, fen, 3, 97862)
}

func TestPerftEnPassant(t *testing.T) {
	perftCase(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 1, 5)
	perftCase(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 2, 19)
}

func TestPerftPromotion(t *testing.T) {
	perftCase(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1", 1, 11)
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	perftCase(t, fen, 1, 14)
	perftCase(t, fen, 2, 191)
	perftCase(t, fen, 3, 2812)
}

func TestPerftDivideSums(t *testing.T) {
	b := NewBoard()
	div := PerftDivide(b, 3)
	if len(div) != 20 {
		t.Fatalf("root moves: got %d want 20", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 8902 {
		t.Errorf("divide sum: got %d want 8902", sum)
	}
}
