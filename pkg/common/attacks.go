package common

type direction struct {
	df, dr int
}

var (
	knightSteps = [8]direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8]direction{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonals   = [4]direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	orthogonals = [4]direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// isAttacked probes the squares an attacker of the given colour could stand on.
// It never generates the attacker's move list.
func isAttacked(b *Board, sq int, byWhite bool) bool {
	var f, r = File(sq), Rank(sq)

	var pawn = MakePiece(Pawn, byWhite)
	var pawnRank = let(byWhite, r-1, r+1)
	if pawnRank >= 0 && pawnRank < 8 {
		if f > 0 && b[MakeSquare(f-1, pawnRank)] == pawn {
			return true
		}
		if f < 7 && b[MakeSquare(f+1, pawnRank)] == pawn {
			return true
		}
	}

	var knight = MakePiece(Knight, byWhite)
	for _, d := range knightSteps {
		if onBoard(f+d.df, r+d.dr) && b[MakeSquare(f+d.df, r+d.dr)] == knight {
			return true
		}
	}

	var king = MakePiece(King, byWhite)
	for _, d := range kingSteps {
		if onBoard(f+d.df, r+d.dr) && b[MakeSquare(f+d.df, r+d.dr)] == king {
			return true
		}
	}

	var queen = MakePiece(Queen, byWhite)
	var bishop = MakePiece(Bishop, byWhite)
	for _, d := range diagonals {
		var p = firstOnRay(b, f, r, d)
		if p == bishop || p == queen {
			return true
		}
	}
	var rook = MakePiece(Rook, byWhite)
	for _, d := range orthogonals {
		var p = firstOnRay(b, f, r, d)
		if p == rook || p == queen {
			return true
		}
	}
	return false
}

func firstOnRay(b *Board, f, r int, d direction) Piece {
	for f, r = f+d.df, r+d.dr; onBoard(f, r); f, r = f+d.df, r+d.dr {
		if p := b[MakeSquare(f, r)]; p != Empty {
			return p
		}
	}
	return Empty
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}
