package engine

import (
	"math"

	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

// mateAdjust moves a forced mate eval one ply closer to zero,
// so that a shorter mate is better than a longer one.
func mateAdjust(eval, increment float64) float64 {
	if eval >= WhiteWinsThreshold {
		return eval - increment
	}
	if eval <= BlackWinsThreshold {
		return eval + increment
	}
	return eval
}

// matePlies is the number of plies to the mating position, or -1.
func matePlies(eval, increment float64) int {
	if eval >= WhiteWinsThreshold {
		return int(math.Round((WhiteWinsEval - eval) / increment))
	}
	if eval <= BlackWinsThreshold {
		return int(math.Round((eval - BlackWinsEval) / increment))
	}
	return -1
}

// newUciScore converts an eval in pawns for White into a score for the side to move.
func newUciScore(eval, increment float64, whiteMove bool) UciScore {
	if !whiteMove {
		eval = -eval
	}
	if plies := matePlies(math.Abs(eval), increment); plies >= 0 {
		var mate = (plies + 1) / 2
		if eval < 0 {
			mate = -mate
		}
		return UciScore{Mate: mate}
	}
	return UciScore{Centipawns: int(math.Round(eval * 100))}
}
