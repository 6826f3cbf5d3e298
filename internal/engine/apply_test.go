package engine

import "testing"

// applyUndoAll applies and reverses every legal move and checks the
// position comes back exactly, move counters included.
func applyUndoAll(t *testing.T, fen string) {
	t.Helper()
	b := mustParse(t, fen)
	before := b.FEN()
	history := len(b.History())
	for _, m := range b.LegalMoves(b.ToMove()) {
		fromPiece := b.PieceAt(m.From)
		b.applyMove(m)
		b.UndoMove()
		if got := b.FEN(); got != before {
			t.Fatalf("undo of %s: got %q want %q", m, got, before)
		}
		if got := b.PieceAt(m.From); got != fromPiece {
			t.Fatalf("undo of %s: piece %+v want %+v", m, got, fromPiece)
		}
		if got := len(b.History()); got != history {
			t.Fatalf("undo of %s: history %d want %d", m, got, history)
		}
	}
}

func TestUndoRestoresPosition(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 4 11",
	} {
		applyUndoAll(t, fen)
	}
}

func TestCastleMovesRookToo(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	b.applyMove(Move{From: Sq(4, 7), To: Sq(6, 7), Kind: MoveCastleKingside})
	if p := b.PieceAt(Sq(6, 7)); p.Type != King {
		t.Errorf("g1 should hold the king, got %+v", p)
	}
	if p := b.PieceAt(Sq(5, 7)); p.Type != Rook {
		t.Errorf("f1 should hold the rook, got %+v", p)
	}
	if b.Occupied(Sq(7, 7)) || b.Occupied(Sq(4, 7)) {
		t.Error("origin squares not cleared")
	}
	if r := b.Rights(); r.WhiteKingside || r.WhiteQueenside {
		t.Errorf("white rights survive castling: %+v", r)
	}
	if b.KingSquare(White) != Sq(6, 7) {
		t.Error("king position not tracked through the castle")
	}

	b.UndoMove()
	if p := b.PieceAt(Sq(4, 7)); p.Type != King || p.MoveCount != 0 {
		t.Errorf("king not restored: %+v", p)
	}
	if p := b.PieceAt(Sq(7, 7)); p.Type != Rook || p.MoveCount != 0 {
		t.Errorf("rook not restored: %+v", p)
	}
	if r := b.Rights(); !r.WhiteKingside || !r.WhiteQueenside {
		t.Errorf("rights not restored: %+v", r)
	}
}

func TestDoublePushOpensWindowOnce(t *testing.T) {
	b := NewBoard()
	b.applyMove(Move{From: Sq(4, 6), To: Sq(4, 4), Kind: MoveDoublePawnPush})
	if ep, ok := b.EnPassantTarget(); !ok || ep != Sq(4, 5) {
		t.Fatalf("en-passant target after e4: %v %v", ep, ok)
	}
	b.applyMove(Move{From: Sq(1, 0), To: Sq(2, 2), Kind: MoveNormal}) // ...Nc6
	if _, ok := b.EnPassantTarget(); ok {
		t.Fatal("window survived the reply")
	}
	b.UndoMove()
	if ep, ok := b.EnPassantTarget(); !ok || ep != Sq(4, 5) {
		t.Fatal("undo did not restore the en-passant target")
	}
}

func TestClocksAcrossApplyUndo(t *testing.T) {
	b := NewBoard()
	b.applyMove(Move{From: Sq(6, 7), To: Sq(5, 5), Kind: MoveNormal}) // Nf3
	if b.HalfmoveClock() != 1 || b.FullmoveNumber() != 1 {
		t.Errorf("after Nf3: clocks %d %d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	b.applyMove(Move{From: Sq(6, 0), To: Sq(5, 2), Kind: MoveNormal}) // ...Nf6
	if b.HalfmoveClock() != 2 || b.FullmoveNumber() != 2 {
		t.Errorf("after ...Nf6: clocks %d %d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	b.applyMove(Move{From: Sq(3, 6), To: Sq(3, 4), Kind: MoveDoublePawnPush}) // d4
	if b.HalfmoveClock() != 0 {
		t.Error("pawn move did not reset the half-move clock")
	}
	b.UndoMove()
	b.UndoMove()
	b.UndoMove()
	if b.FEN() != StartFEN {
		t.Errorf("unwound position: %q", b.FEN())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()
	c.applyMove(Move{From: Sq(4, 6), To: Sq(4, 4), Kind: MoveDoublePawnPush})
	if b.FEN() != StartFEN {
		t.Error("mutating a clone touched the original")
	}
	if len(b.History()) != 0 || len(c.History()) != 1 {
		t.Error("histories shared between clone and original")
	}
}
