package eval

import (
	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

var (
	pointValues       = [PieceCount]float64{1, 3, 3.3, 5, 9, 0, -1, -3, -3.3, -5, -9, 0}
	edgeContributions = [PieceCount]float64{0.05, 0.08, 0.07, 0.07, 0.15, 0, -0.05, -0.08, -0.07, -0.07, -0.15, 0}
)

// EvaluationService scores positions in pawns from White's point of view.
// Each piece-square value is the material value plus a bonus for advanced, central placement.
type EvaluationService struct {
	values [PieceCount][64]float64
}

func NewEvaluationService() *EvaluationService {
	var e = &EvaluationService{}
	for piece := WhitePawn; piece <= BlackKing; piece++ {
		for sq := 0; sq < 64; sq++ {
			var rowScore = Rank(sq)
			if piece.IsBlack() {
				rowScore = Rank8 - Rank(sq)
			}
			var colScore = File(sq)
			if colScore >= FileE {
				colScore = FileH - colScore
			}
			var placement = float64(rowScore+colScore-3) * edgeContributions[piece]
			e.values[piece][sq] = pointValues[piece] + placement
		}
	}
	return e
}

func (e *EvaluationService) Value(piece Piece, sq int) float64 {
	if !piece.IsValid() {
		return 0
	}
	return e.values[piece][sq]
}

func (e *EvaluationService) Evaluate(p *Position) float64 {
	var eval = 0.0
	for sq, piece := range p.Board {
		if piece != Empty {
			eval += e.values[piece][sq]
		}
	}
	return eval
}

// MoveDelta is Evaluate(child) - Evaluate(p) for a move that does not capture a king.
func (e *EvaluationService) MoveDelta(p *Position, m Move) float64 {
	var from, to = m.From(), m.Dest()
	var piece = p.Board[from]
	var delta = -e.Value(piece, from) - e.Value(p.Board[to], to)
	if promotion := m.Promotion(); promotion != Empty {
		delta += e.Value(promotion, to)
	} else {
		delta += e.Value(piece, to)
	}
	if victim := p.EnPassantVictim(m); victim != SquareNone {
		delta -= e.Value(p.Board[victim], victim)
	}
	if rookFrom, rookTo, ok := p.CastleRookMove(m); ok {
		var rook = p.Board[rookFrom]
		delta += e.Value(rook, rookTo) - e.Value(rook, rookFrom)
	}
	return delta
}

// EvaluateMove returns the static eval after m given the eval before it.
// Landing on the enemy king is scored as a win for the mover.
func (e *EvaluationService) EvaluateMove(p *Position, eval float64, m Move) float64 {
	if m.Dest() == p.KingSquare(!p.WhiteMove) {
		if p.WhiteMove {
			return WhiteWinsEval
		}
		return BlackWinsEval
	}
	return eval + e.MoveDelta(p, m)
}
