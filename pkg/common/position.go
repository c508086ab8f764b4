package common

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

type GameState int8

const (
	Normal GameState = iota
	WhiteWon
	BlackWon
	Draw
)

func (s GameState) String() string {
	switch s {
	case Normal:
		return "normal"
	case WhiteWon:
		return "white-won"
	case BlackWon:
		return "black-won"
	case Draw:
		return "draw"
	}
	return "unknown"
}

type Board [64]Piece

// Position is a full board snapshot plus the state that cannot be read from the board.
// WhiteMove is the side that makes the next move; LastMove produced the position.
type Position struct {
	Board        Board
	CastleRights int
	EpFile       int
	Rule50       int
	WhiteKing    int
	BlackKing    int
	LastMove     Move
	WhiteMove    bool
	State        GameState
}

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var startingBoard = Board{
	WhiteRook, WhiteKnight, WhiteBishop, WhiteQueen, WhiteKing, WhiteBishop, WhiteKnight, WhiteRook,
	WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn, WhitePawn,
	Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty,
	Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty,
	Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty,
	Empty, Empty, Empty, Empty, Empty, Empty, Empty, Empty,
	BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn, BlackPawn,
	BlackRook, BlackKnight, BlackBishop, BlackQueen, BlackKing, BlackBishop, BlackKnight, BlackRook,
}

func NewInitialPosition() Position {
	return Position{
		Board:        startingBoard,
		CastleRights: WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide,
		EpFile:       -1,
		WhiteKing:    SquareE1,
		BlackKing:    SquareE8,
		WhiteMove:    true,
	}
}

func emptyBoard() Board {
	var b Board
	for i := range b {
		b[i] = Empty
	}
	return b
}

func (p *Position) KingSquare(white bool) int {
	if white {
		return p.WhiteKing
	}
	return p.BlackKing
}

// IsCheck reports whether the side to move is in check.
func (p *Position) IsCheck() bool {
	return isAttacked(&p.Board, p.KingSquare(p.WhiteMove), !p.WhiteMove)
}

func (p *Position) Terminal() bool {
	return p.State != Normal
}
