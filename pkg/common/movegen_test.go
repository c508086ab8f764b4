package common

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/notnil/chess"
	"golang.org/x/exp/slices"
)

var oracleFens = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
	"r3k2r/8/8/8/8/8/5q2/R3K2R w KQkq - 0 1",
	"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
	"8/8/8/8/k2Pp2Q/8/8/3K4 b - d3 0 1",
	"4k3/1P6/8/8/8/8/6p1/4K3 w - - 0 1",
	"4k3/1P6/8/8/8/8/6p1/4K3 b - - 0 1",
}

func TestLegalMovesMatchOracle(t *testing.T) {
	for i, fen := range oracleFens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var got, want = legalMoveNames(&p), oracleMoveNames(t, fen)
		if !slices.Equal(got, want) {
			t.Error(i, fen, got, want)
		}
	}
}

func TestRandomGamesMatchOracle(t *testing.T) {
	var rnd = rand.New(rand.NewSource(1))
	for game := 0; game < 20; game++ {
		var p = NewInitialPosition()
		for ply := 0; ply < 80; ply++ {
			var fen = p.String()
			var got, want = legalMoveNames(&p), oracleMoveNames(t, fen)
			if !slices.Equal(got, want) {
				t.Fatal(game, ply, fen, got, want)
			}
			if len(got) == 0 {
				break
			}
			var child, ok = p.MakeMoveLAN(got[rnd.Intn(len(got))])
			if !ok {
				t.Fatal(game, ply, fen)
			}
			p = child
		}
	}
}

func legalMoveNames(p *Position) []string {
	var buffer [MaxMoves]Move
	var result []string
	for _, m := range p.GenerateLegalMoves(buffer[:0]) {
		result = append(result, m.String())
	}
	sort.Strings(result)
	return result
}

func oracleMoveNames(t *testing.T, fen string) []string {
	t.Helper()
	var opt, err = chess.FEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	var game = chess.NewGame(opt)
	var result []string
	for _, m := range game.ValidMoves() {
		result = append(result, chess.UCINotation{}.Encode(game.Position(), m))
	}
	sort.Strings(result)
	return result
}

func TestInitialPositionHasTwentyMoves(t *testing.T) {
	var p = NewInitialPosition()
	var buffer [MaxMoves]Move
	var ml = p.GenerateLegalMoves(buffer[:0])
	if len(ml) != 20 {
		t.Fatal(len(ml))
	}
	var pawnMoves, knightMoves = 0, 0
	for _, m := range ml {
		switch p.Board[m.From()] {
		case WhitePawn:
			pawnMoves++
		case WhiteKnight:
			knightMoves++
		}
	}
	if pawnMoves != 16 || knightMoves != 4 {
		t.Error(pawnMoves, knightMoves)
	}
}

func TestKingsOnly(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MaxMoves]Move
	var ml = p.GenerateLegalMoves(buffer[:0])
	if len(ml) != 5 {
		t.Error(len(ml), ml)
	}
	for _, m := range ml {
		if p.Board[m.Dest()] != Empty {
			t.Error("capture", m)
		}
	}
	if p.IsCheck() {
		t.Error("check")
	}
}

func TestQueenCheckHasEscapes(t *testing.T) {
	// K e1, q h4, k e8 is check but not mate
	var p, err = NewPositionFromFEN("4k3/8/8/8/7q/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsCheck() {
		t.Fatal("expected check")
	}
	if !IsInCheck(&p, SquareE1, true) || IsInCheck(&p, SquareE8, false) {
		t.Error("IsInCheck")
	}
	var buffer [MaxMoves]Move
	var got []string
	for _, m := range p.GenerateLegalMoves(buffer[:0]) {
		got = append(got, m.String())
	}
	sort.Strings(got)
	if !slices.Equal(got, []string{"e1d1", "e1d2", "e1e2", "e1f1"}) {
		t.Error(got)
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	var tests = []struct {
		fen     string
		check   bool
		hasMove bool
	}{
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, false},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, false},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", false, true},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		if p.IsCheck() != test.check || p.HasLegalMove() != test.hasMove {
			t.Error(i, test, p.IsCheck(), p.HasLegalMove())
		}
	}
}

func TestMakeMoveIfLegal(t *testing.T) {
	var tests = []struct {
		fen   string
		move  Move
		legal bool
	}{
		{InitialPositionFen, MakeMove(SquareE2, SquareE4), true},
		{InitialPositionFen, MakeMove(SquareE2, SquareE5), false},
		{InitialPositionFen, MakeMove(SquareE7, SquareE5), false},
		{"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", MakeMove(SquareE1, SquareE2), true},
		{"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", MakeMove(SquareE1, SquareD2), false},
		{"4k3/8/8/8/4r3/8/4B3/4K3 w - - 0 1", MakeMove(SquareE2, SquareD3), false},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var child, moveErr = p.MakeMoveIfLegal(test.move)
		if (moveErr == nil) != test.legal {
			t.Error(i, test, moveErr)
			continue
		}
		if test.legal && (child.LastMove != test.move || child.WhiteMove == p.WhiteMove || child.Terminal()) {
			t.Error(i, test, child.LastMove)
		}
	}
}

func TestEnPassantLastsOnePly(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ok bool
	if p, ok = p.MakeMoveLAN("d7d5"); !ok {
		t.Fatal("d7d5")
	}
	if p.EpFile != FileD {
		t.Fatal(p.EpFile)
	}
	if !IsLegalMove(&p, SquareE5, SquareD6) {
		t.Error("en passant must be legal right after the double push")
	}

	// a waiting move by each side clears the right
	if p, ok = p.MakeMoveLAN("e1f1"); !ok {
		t.Fatal("e1f1")
	}
	if p, ok = p.MakeMoveLAN("e8f8"); !ok {
		t.Fatal("e8f8")
	}
	if p.EpFile != -1 {
		t.Error(p.EpFile)
	}
	if IsLegalMove(&p, SquareE5, SquareD6) {
		t.Error("en passant must expire")
	}
}

func TestEnPassantRemovesPawn(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var child, ok = p.MakeMoveLAN("e5d6")
	if !ok {
		t.Fatal("e5d6")
	}
	if child.Board[SquareD5] != Empty || child.Board[SquareD6] != WhitePawn || child.Rule50 != 0 {
		t.Error(child.String())
	}
}

func TestCastlingMovesRookAndClearsRights(t *testing.T) {
	var p, err = NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var child, ok = p.MakeMoveLAN("e1g1")
	if !ok {
		t.Fatal("e1g1")
	}
	if child.Board[SquareF1] != WhiteRook || child.Board[SquareH1] != Empty || child.WhiteKing != SquareG1 {
		t.Error(child.String())
	}
	if child.CastleRights != BlackKingSide|BlackQueenSide {
		t.Error(child.CastleRights)
	}

	child, ok = p.MakeMoveLAN("a1a8")
	if !ok {
		t.Fatal("a1a8")
	}
	if child.CastleRights != WhiteKingSide|BlackKingSide {
		t.Error(child.CastleRights)
	}
}

func TestBlackQueenSideCastleThroughCheck(t *testing.T) {
	var tests = []struct {
		fen   string
		legal bool
	}{
		{"r3k3/8/8/8/8/8/8/4K3 b q - 0 1", true},
		{"r3k3/8/8/8/8/8/8/3RK3 b q - 0 1", false},
		{"r3k3/8/8/8/8/8/8/2R1K3 b q - 0 1", false},
		{"r3k3/8/8/8/8/8/8/1R2K3 b q - 0 1", true},
		{"r3k3/8/8/1B6/8/8/8/4K3 b q - 0 1", false},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(i, err)
		}
		var before = p
		if IsLegalMove(&p, SquareE8, SquareC8) != test.legal {
			t.Error(i, test)
		}
		if p != before {
			t.Error(i, "position changed")
		}
	}
}

func TestPromotions(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var child, ok = p.MakeMoveLAN("b7b8n")
	if !ok {
		t.Fatal("b7b8n")
	}
	if child.Board[SquareB8] != WhiteKnight || child.Board[SquareB7] != Empty {
		t.Error(child.String())
	}
	if !IsLegalMove(&p, SquareB7, PromotionCode(FileB, WhiteQueen)) {
		t.Error("queen promotion")
	}
	if IsLegalMove(&p, SquareB7, SquareB8) {
		t.Error("promotion without a piece")
	}
	if IsLegalMove(&p, SquareB7, PromotionCode(FileB, BlackQueen)) {
		t.Error("promotion to a black piece")
	}
}
