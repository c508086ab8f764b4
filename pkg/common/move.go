package common

import "strings"

// Move packs the two wire bytes of a move: the source square in the low byte
// and the destination code in the high byte. Destination codes 0..63 are
// squares (castling and en passant included), 64..127 are promotions.
type Move uint16

const MoveEmpty = Move(0)

const (
	PromotionBase = 64
	PromotionEnd  = 128
)

func MakeMove(from, to int) Move {
	return Move(from | to<<8)
}

func (m Move) From() int {
	return int(m & 0xFF)
}

// To is the encoded destination, a promotion code for promotions.
func (m Move) To() int {
	return int(m >> 8)
}

func (m Move) IsPromotion() bool {
	var to = m.To()
	return to >= PromotionBase && to < PromotionEnd
}

// Dest is the real destination square.
func (m Move) Dest() int {
	var to = m.To()
	if to < PromotionBase {
		return to
	}
	return promotionDest(to)
}

// Promotion is the piece a pawn turns into, or Empty.
func (m Move) Promotion() Piece {
	var to = m.To()
	if to < PromotionBase || to >= PromotionEnd {
		return Empty
	}
	var k = (to - PromotionBase) / 8
	if k < 4 {
		return WhiteKnight + Piece(k)
	}
	return BlackKnight + Piece(k-4)
}

func promotionDest(code int) int {
	var k = (code - PromotionBase) / 8
	if k < 4 {
		return MakeSquare(code%8, Rank8)
	}
	return MakeSquare(code%8, Rank1)
}

// PromotionCode encodes destination file and promotion piece.
// White pieces land on rank 8, black pieces on rank 1.
func PromotionCode(file int, piece Piece) int {
	if piece.IsWhite() {
		return PromotionBase + 8*int(piece-WhiteKnight) + file
	}
	return PromotionBase + 8*(4+int(piece-BlackKnight)) + file
}

func MakePromotion(from, file int, piece Piece) Move {
	return MakeMove(from, PromotionCode(file, piece))
}

// String returns long algebraic notation as used by UCI.
func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if p := m.Promotion(); p != Empty {
		sPromotion = strings.ToLower(p.String())
	}
	return SquareName(m.From()) + SquareName(m.Dest()) + sPromotion
}
