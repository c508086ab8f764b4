package common

import (
	"errors"
	"fmt"
	"strconv"
	s "strings"
	"unicode"
)

var ErrBadFen = errors.New("parse fen failed")

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = s.Fields(fen)
	if len(tokens) <= 3 {
		return Position{}, fmt.Errorf("%w %v", ErrBadFen, fen)
	}

	var p = Position{
		Board:     emptyBoard(),
		EpFile:    -1,
		WhiteKing: SquareNone,
		BlackKing: SquareNone,
	}

	var i = 0
	for _, ch := range tokens[0] {
		if unicode.IsDigit(ch) {
			var n, _ = strconv.Atoi(string(ch))
			i += n
		} else if unicode.IsLetter(ch) {
			var piece = parsePiece(ch)
			if piece == Empty || i >= 64 {
				return Position{}, fmt.Errorf("%w %v", ErrBadFen, fen)
			}
			var sq = FlipSquare(i)
			p.Board[sq] = piece
			switch piece {
			case WhiteKing:
				if p.WhiteKing != SquareNone {
					return Position{}, fmt.Errorf("%w: two white kings %v", ErrBadFen, fen)
				}
				p.WhiteKing = sq
			case BlackKing:
				if p.BlackKing != SquareNone {
					return Position{}, fmt.Errorf("%w: two black kings %v", ErrBadFen, fen)
				}
				p.BlackKing = sq
			}
			i++
		}
	}
	if i != 64 || p.WhiteKing == SquareNone || p.BlackKing == SquareNone {
		return Position{}, fmt.Errorf("%w %v", ErrBadFen, fen)
	}

	p.WhiteMove = tokens[1] == "w"

	var sCastleRights = tokens[2]
	if s.Contains(sCastleRights, "K") {
		p.CastleRights |= WhiteKingSide
	}
	if s.Contains(sCastleRights, "Q") {
		p.CastleRights |= WhiteQueenSide
	}
	if s.Contains(sCastleRights, "k") {
		p.CastleRights |= BlackKingSide
	}
	if s.Contains(sCastleRights, "q") {
		p.CastleRights |= BlackQueenSide
	}

	if epSquare := ParseSquare(tokens[3]); epSquare != SquareNone {
		p.EpFile = File(epSquare)
	}

	if len(tokens) > 4 {
		p.Rule50, _ = strconv.Atoi(tokens[4])
		p.Rule50 = Max(0, Min(p.Rule50, maxRule50))
	}

	// the side that just moved must not be in check
	if isAttacked(&p.Board, p.KingSquare(!p.WhiteMove), p.WhiteMove) {
		return Position{}, fmt.Errorf("%w: side not to move in check %v", ErrBadFen, fen)
	}
	return p, nil
}

func (p *Position) String() string {
	var sb s.Builder

	var emptyCount = 0
	for i := 0; i < 64; i++ {
		var sq = FlipSquare(i)
		var piece = p.Board[sq]
		if piece == Empty {
			emptyCount++
		} else {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteString(piece.String())
		}

		if File(sq) == FileH {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			if Rank(sq) != Rank1 {
				sb.WriteString("/")
			}
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		if (p.CastleRights & WhiteKingSide) != 0 {
			sb.WriteString("K")
		}
		if (p.CastleRights & WhiteQueenSide) != 0 {
			sb.WriteString("Q")
		}
		if (p.CastleRights & BlackKingSide) != 0 {
			sb.WriteString("k")
		}
		if (p.CastleRights & BlackQueenSide) != 0 {
			sb.WriteString("q")
		}
	}

	sb.WriteString(" ")
	if p.EpFile == -1 {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(MakeSquare(p.EpFile, let(p.WhiteMove, Rank6, Rank3))))
	}

	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" 1")

	return sb.String()
}
