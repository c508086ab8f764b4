package common

var (
	bishopRays = diagonals[:]
	rookRays   = orthogonals[:]
	queenRays  = append(append([]direction{}, diagonals[:]...), orthogonals[:]...)
)

var promotionKinds = [4]int{Knight, Bishop, Rook, Queen}

// GenerateMoves appends the semilegal moves of the side to move.
// Castling is already checked for attacked squares here.
func (p *Position) GenerateMoves(ml []Move) []Move {
	var white = p.WhiteMove
	for sq, piece := range p.Board {
		if piece.Belongs(white) {
			ml = p.generatePieceMoves(ml, sq, piece)
		}
	}
	return ml
}

func (p *Position) generatePieceMoves(ml []Move, sq int, piece Piece) []Move {
	switch piece.Kind() {
	case Pawn:
		ml = p.pawnMoves(ml, sq)
	case Knight:
		ml = p.stepMoves(ml, sq, knightSteps[:])
	case Bishop:
		ml = p.slideMoves(ml, sq, bishopRays)
	case Rook:
		ml = p.slideMoves(ml, sq, rookRays)
	case Queen:
		ml = p.slideMoves(ml, sq, queenRays)
	case King:
		ml = p.stepMoves(ml, sq, kingSteps[:])
		ml = p.castleMoves(ml, sq)
	}
	return ml
}

// GenerateLegalMoves appends only the moves that do not leave the mover's king attacked.
func (p *Position) GenerateLegalMoves(ml []Move) []Move {
	var start = len(ml)
	ml = p.GenerateMoves(ml)
	var child Position
	var n = start
	for _, m := range ml[start:] {
		if p.MakeMove(m, &child) {
			ml[n] = m
			n++
		}
	}
	return ml[:n]
}

func (p *Position) HasLegalMove() bool {
	var buffer [MaxMoves]Move
	var child Position
	for _, m := range p.GenerateMoves(buffer[:0]) {
		if p.MakeMove(m, &child) {
			return true
		}
	}
	return false
}

func (p *Position) pawnMoves(ml []Move, from int) []Move {
	var white = p.WhiteMove
	var f, r = File(from), Rank(from)
	var dr, homeRank, lastRank, epRank = 1, Rank2, Rank8, Rank5
	if !white {
		dr, homeRank, lastRank, epRank = -1, Rank7, Rank1, Rank4
	}
	if r+dr < Rank1 || r+dr > Rank8 {
		return ml
	}

	var addPawnMove = func(file, rank int) {
		if rank == lastRank {
			for _, kind := range promotionKinds {
				ml = append(ml, MakePromotion(from, file, MakePiece(kind, white)))
			}
		} else {
			ml = append(ml, MakeMove(from, MakeSquare(file, rank)))
		}
	}

	if p.Board[MakeSquare(f, r+dr)] == Empty {
		addPawnMove(f, r+dr)
		if r == homeRank && p.Board[MakeSquare(f, r+2*dr)] == Empty {
			ml = append(ml, MakeMove(from, MakeSquare(f, r+2*dr)))
		}
	}
	for _, df := range [2]int{-1, 1} {
		var tf = f + df
		if tf < FileA || tf > FileH {
			continue
		}
		var target = p.Board[MakeSquare(tf, r+dr)]
		if target != Empty && !target.Belongs(white) {
			addPawnMove(tf, r+dr)
		} else if r == epRank && p.EpFile == tf {
			ml = append(ml, MakeMove(from, MakeSquare(tf, r+dr)))
		}
	}
	return ml
}

func (p *Position) stepMoves(ml []Move, from int, steps []direction) []Move {
	var f, r = File(from), Rank(from)
	for _, d := range steps {
		if !onBoard(f+d.df, r+d.dr) {
			continue
		}
		var to = MakeSquare(f+d.df, r+d.dr)
		if !p.Board[to].Belongs(p.WhiteMove) {
			ml = append(ml, MakeMove(from, to))
		}
	}
	return ml
}

func (p *Position) slideMoves(ml []Move, from int, rays []direction) []Move {
	var f0, r0 = File(from), Rank(from)
	for _, d := range rays {
		for f, r := f0+d.df, r0+d.dr; onBoard(f, r); f, r = f+d.df, r+d.dr {
			var to = MakeSquare(f, r)
			var target = p.Board[to]
			if target == Empty {
				ml = append(ml, MakeMove(from, to))
				continue
			}
			if !target.Belongs(p.WhiteMove) {
				ml = append(ml, MakeMove(from, to))
			}
			break
		}
	}
	return ml
}

type castle struct {
	right       int
	white       bool
	king        int
	rook        int
	kingTo      int
	empty       []int
	notAttacked []int
}

var castles = [4]castle{
	{WhiteKingSide, true, SquareE1, SquareH1, SquareG1, []int{SquareF1, SquareG1}, []int{SquareE1, SquareF1, SquareG1}},
	{WhiteQueenSide, true, SquareE1, SquareA1, SquareC1, []int{SquareD1, SquareC1, SquareB1}, []int{SquareE1, SquareD1, SquareC1}},
	{BlackKingSide, false, SquareE8, SquareH8, SquareG8, []int{SquareF8, SquareG8}, []int{SquareE8, SquareF8, SquareG8}},
	{BlackQueenSide, false, SquareE8, SquareA8, SquareC8, []int{SquareD8, SquareC8, SquareB8}, []int{SquareE8, SquareD8, SquareC8}},
}

func (p *Position) castleMoves(ml []Move, from int) []Move {
	var white = p.WhiteMove
	for i := range castles {
		var c = &castles[i]
		if c.white != white || c.king != from || p.CastleRights&c.right == 0 ||
			p.Board[c.rook] != MakePiece(Rook, white) {
			continue
		}
		if p.castleAllowed(c, white) {
			ml = append(ml, MakeMove(from, c.kingTo))
		}
	}
	return ml
}

func (p *Position) castleAllowed(c *castle, white bool) bool {
	for _, sq := range c.empty {
		if p.Board[sq] != Empty {
			return false
		}
	}
	// The king is moved onto each square of a private board copy.
	var b = p.Board
	b[c.king] = Empty
	var king = MakePiece(King, white)
	for _, sq := range c.notAttacked {
		b[sq] = king
		if isAttacked(&b, sq, !white) {
			return false
		}
		b[sq] = Empty
	}
	return true
}
