package common

// IsLegalMove reports whether the side to move may play from -> to.
// to is a square or a promotion code. Nothing in p is modified.
func IsLegalMove(p *Position, from, to int) bool {
	if !IsSquare(from) || to < 0 || to >= PromotionEnd {
		return false
	}
	var move = MakeMove(from, to)
	var dest = move.Dest()
	if from == dest {
		return false
	}
	var piece = p.Board[from]
	if !piece.Belongs(p.WhiteMove) {
		return false
	}
	if p.Board[dest].Belongs(p.WhiteMove) {
		return false
	}

	var buffer [MaxMoves]Move
	var ml = p.generatePieceMoves(buffer[:0], from, piece)
	var child Position
	for _, m := range ml {
		if m == move {
			return p.MakeMove(m, &child)
		}
	}
	return false
}

// IsInCheck reports whether the king of the given colour on kingSquare is attacked.
func IsInCheck(p *Position, kingSquare int, white bool) bool {
	if !IsSquare(kingSquare) {
		return false
	}
	return isAttacked(&p.Board, kingSquare, !white)
}
