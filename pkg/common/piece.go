package common

// Piece is a board cell value. The numeric codes are part of the wire format.
type Piece int8

const (
	Empty       Piece = -1
	WhitePawn   Piece = 0
	WhiteKnight Piece = 1
	WhiteBishop Piece = 2
	WhiteRook   Piece = 3
	WhiteQueen  Piece = 4
	WhiteKing   Piece = 5
	BlackPawn   Piece = 6
	BlackKnight Piece = 7
	BlackBishop Piece = 8
	BlackRook   Piece = 9
	BlackQueen  Piece = 10
	BlackKing   Piece = 11
)

const PieceCount = 12

// Piece kinds, colour independent.
const (
	Pawn = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const pieceChars = "PNBRQKpnbrqk"

func MakePiece(kind int, white bool) Piece {
	if white {
		return Piece(kind)
	}
	return Piece(kind + 6)
}

func (p Piece) IsWhite() bool {
	return p >= WhitePawn && p <= WhiteKing
}

func (p Piece) IsBlack() bool {
	return p >= BlackPawn && p <= BlackKing
}

func (p Piece) IsValid() bool {
	return p >= WhitePawn && p <= BlackKing
}

func (p Piece) Kind() int {
	return int(p) % 6
}

// Belongs reports whether the piece is owned by the given side.
func (p Piece) Belongs(white bool) bool {
	if white {
		return p.IsWhite()
	}
	return p.IsBlack()
}

func (p Piece) String() string {
	if !p.IsValid() {
		return "."
	}
	return pieceChars[p : p+1]
}

func parsePiece(ch rune) Piece {
	for i, c := range pieceChars {
		if c == ch {
			return Piece(i)
		}
	}
	return Empty
}
