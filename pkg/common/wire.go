package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// WireFieldCount is the number of integers in a wire position:
// 64 piece codes followed by castling flags wK wQ bK bQ, en passant file,
// fifty-move counter, king squares, last move from/to, side to move and game state.
const WireFieldCount = 64 + 12

var ErrBadWire = errors.New("parse wire position failed")

func ParseWire(s string) (Position, error) {
	return ParseWireFields(strings.Fields(s))
}

func ParseWireFields(fields []string) (Position, error) {
	if len(fields) != WireFieldCount {
		return Position{}, fmt.Errorf("%w: %v fields", ErrBadWire, len(fields))
	}
	var values [WireFieldCount]int
	for i, field := range fields {
		var v, err = strconv.Atoi(field)
		if err != nil {
			return Position{}, fmt.Errorf("%w: %v", ErrBadWire, err)
		}
		values[i] = v
	}

	var p Position
	for sq := 0; sq < 64; sq++ {
		if values[sq] < int(Empty) || values[sq] >= PieceCount {
			return Position{}, fmt.Errorf("%w: piece code %v on %v", ErrBadWire, values[sq], SquareName(sq))
		}
		p.Board[sq] = Piece(values[sq])
	}
	var state = values[64:]
	for i, right := range [4]int{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
		if state[i] != 0 {
			p.CastleRights |= right
		}
	}
	p.EpFile = state[4]
	p.Rule50 = state[5]
	p.WhiteKing = state[6]
	p.BlackKing = state[7]
	if state[8] >= 0 && state[9] >= 0 {
		if !IsSquare(state[8]) || state[9] >= PromotionEnd {
			return Position{}, fmt.Errorf("%w: last move %v %v", ErrBadWire, state[8], state[9])
		}
		p.LastMove = MakeMove(state[8], state[9])
	}
	p.WhiteMove = state[10] == 0
	p.State = GameState(state[11])

	if p.EpFile < -1 || p.EpFile > FileH ||
		!IsSquare(p.WhiteKing) || !IsSquare(p.BlackKing) ||
		p.State < Normal || p.State > Draw {
		return Position{}, fmt.Errorf("%w: bad state %v", ErrBadWire, state)
	}
	return p, nil
}

func (p *Position) WireString() string {
	var sb strings.Builder
	for _, piece := range p.Board {
		sb.WriteString(strconv.Itoa(int(piece)))
		sb.WriteByte(' ')
	}
	for _, right := range [4]int{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide} {
		sb.WriteString(boolToWire(p.CastleRights&right != 0))
		sb.WriteByte(' ')
	}
	var from, to = -1, -1
	if p.LastMove != MoveEmpty {
		from, to = p.LastMove.From(), p.LastMove.To()
	}
	fmt.Fprintf(&sb, "%d %d %d %d %d %d %s %d",
		p.EpFile, p.Rule50, p.WhiteKing, p.BlackKing, from, to,
		boolToWire(!p.WhiteMove), int(p.State))
	return sb.String()
}

func boolToWire(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
