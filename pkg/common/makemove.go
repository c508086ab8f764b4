package common

import "fmt"

const maxRule50 = 100

var castleMask [64]int

func init() {
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}

// MakeMove writes the position after move into result.
// It returns false when the move leaves the mover's king attacked; result is garbage then.
func (src *Position) MakeMove(move Move, result *Position) bool {
	var from = move.From()
	var to = move.Dest()
	var movingPiece = src.Board[from]
	var capturedPiece = src.Board[to]
	var white = src.WhiteMove

	*result = *src
	result.WhiteMove = !white
	result.LastMove = move
	result.State = Normal
	result.EpFile = -1
	result.CastleRights = src.CastleRights & castleMask[from] & castleMask[to]

	if movingPiece.Kind() == Pawn || capturedPiece != Empty {
		result.Rule50 = 0
	} else {
		result.Rule50 = Min(src.Rule50+1, maxRule50)
	}

	result.Board[from] = Empty
	result.Board[to] = movingPiece

	switch movingPiece.Kind() {
	case Pawn:
		if p := move.Promotion(); p != Empty {
			result.Board[to] = p
		} else if victim := src.EnPassantVictim(move); victim != SquareNone {
			result.Board[victim] = Empty
		} else if Abs(to-from) == 16 {
			result.EpFile = File(from)
		}
	case King:
		if white {
			result.WhiteKing = to
		} else {
			result.BlackKing = to
		}
		if rookFrom, rookTo, ok := src.CastleRookMove(move); ok {
			result.Board[rookTo] = result.Board[rookFrom]
			result.Board[rookFrom] = Empty
		}
	}

	return !isAttacked(&result.Board, result.KingSquare(white), !white)
}

// CastleRookMove returns the rook squares of a castling move, or false.
func (p *Position) CastleRookMove(move Move) (from, to int, ok bool) {
	if p.Board[move.From()].Kind() != King {
		return 0, 0, false
	}
	switch {
	case move.From() == SquareE1 && move.To() == SquareG1:
		return SquareH1, SquareF1, true
	case move.From() == SquareE1 && move.To() == SquareC1:
		return SquareA1, SquareD1, true
	case move.From() == SquareE8 && move.To() == SquareG8:
		return SquareH8, SquareF8, true
	case move.From() == SquareE8 && move.To() == SquareC8:
		return SquareA8, SquareD8, true
	}
	return 0, 0, false
}

// EnPassantVictim returns the square of the pawn removed by an en passant move, or SquareNone.
func (p *Position) EnPassantVictim(move Move) int {
	var from, to = move.From(), move.Dest()
	if p.Board[from].Kind() != Pawn || p.Board[to] != Empty || File(from) == File(to) {
		return SquareNone
	}
	return MakeSquare(File(to), Rank(from))
}

func (p *Position) MakeMoveIfLegal(move Move) (Position, error) {
	var buffer [MaxMoves]Move
	for _, m := range p.GenerateLegalMoves(buffer[:0]) {
		if m == move {
			var child Position
			p.MakeMove(m, &child)
			return child, nil
		}
	}
	return Position{}, fmt.Errorf("illegal move %v", move)
}
