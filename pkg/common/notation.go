package common

import "strings"

// MoveName renders a move for people: 0-0, 0-0-0, or piece letter, from, to and promotion letter.
// Pawn moves have no piece letter: e2e4, Ng1f3, e7e8Q.
func (p *Position) MoveName(move Move) string {
	if _, rookTo, ok := p.CastleRookMove(move); ok {
		if File(rookTo) == FileF {
			return "0-0"
		}
		return "0-0-0"
	}
	var sb strings.Builder
	var piece = p.Board[move.From()]
	if piece == Empty {
		sb.WriteString("?")
	} else if piece.Kind() != Pawn {
		sb.WriteString(MakePiece(piece.Kind(), true).String())
	}
	sb.WriteString(SquareName(move.From()))
	sb.WriteString(SquareName(move.Dest()))
	if promotion := move.Promotion(); promotion != Empty {
		sb.WriteString(MakePiece(promotion.Kind(), true).String())
	}
	return sb.String()
}

// ParseMoveLAN finds the legal move written in long algebraic notation (e2e4, e7e8q).
func (p *Position) ParseMoveLAN(lan string) Move {
	var buffer [MaxMoves]Move
	for _, m := range p.GenerateLegalMoves(buffer[:0]) {
		if strings.EqualFold(lan, m.String()) {
			return m
		}
	}
	return MoveEmpty
}

// MakeMoveLAN plays a move given in long algebraic notation.
func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	var move = p.ParseMoveLAN(lan)
	if move == MoveEmpty {
		return Position{}, false
	}
	var child Position
	p.MakeMove(move, &child)
	return child, true
}
