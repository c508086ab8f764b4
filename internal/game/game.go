package game

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterTree/pkg/common"
)

type Result int

const (
	ResultNone Result = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWhiteWins:
		return "1-0"
	case ResultBlackWins:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	}
	return "*"
}

const (
	DifficultyMin = 0
	DifficultyMax = 9
)

// minimumSufficientCounts is the number of pieces of one kind that can still mate.
// Kings are never counted.
var minimumSufficientCounts = [common.PieceCount]int{1, 2, 2, 1, 1, 0, 1, 2, 2, 1, 1, 0}

// Game is the list of positions played so far, oldest first.
type Game struct {
	positions []common.Position
}

func New(start common.Position) *Game {
	return &Game{positions: []common.Position{start}}
}

func (g *Game) Current() *common.Position {
	return &g.positions[len(g.positions)-1]
}

func (g *Game) Positions() []common.Position {
	return g.positions
}

func (g *Game) MakeMove(move common.Move) bool {
	var child, err = g.Current().MakeMoveIfLegal(move)
	if err != nil {
		return false
	}
	g.positions = append(g.positions, child)
	return true
}

func (g *Game) MakeMoveLAN(lan string) bool {
	var child, ok = g.Current().MakeMoveLAN(lan)
	if !ok {
		return false
	}
	g.positions = append(g.positions, child)
	return true
}

// Result reports how the game ended after the last move, with a short comment.
func (g *Game) Result() (Result, string) {
	var p = g.Current()
	if !p.HasLegalMove() {
		if !p.IsCheck() {
			return ResultDraw, "stalemate"
		}
		if p.WhiteMove {
			return ResultBlackWins, "checkmate"
		}
		return ResultWhiteWins, "checkmate"
	}
	if p.Rule50 >= 100 {
		return ResultDraw, "50 moves"
	}
	if InsufficientMaterial(p) {
		return ResultDraw, "insufficient material"
	}
	if g.ThreefoldRepetition() {
		return ResultDraw, "3 fold repetition"
	}
	return ResultNone, ""
}

// ThreefoldRepetition reports whether the current position occurred at least twice before
// with the same side to move, castling rights and en passant file.
func (g *Game) ThreefoldRepetition() bool {
	var last = len(g.positions) - 1
	var cur = &g.positions[last]
	var count = 0
	for i := last - 2; i >= 0; i -= 2 {
		var p = &g.positions[i]
		if p.Board == cur.Board &&
			p.CastleRights == cur.CastleRights &&
			p.EpFile == cur.EpFile {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

func InsufficientMaterial(p *common.Position) bool {
	var counts [common.PieceCount]int
	for _, piece := range p.Board {
		if piece.IsValid() {
			counts[piece]++
		}
	}
	for piece, count := range counts {
		if minimumSufficientCounts[piece] != 0 && count >= minimumSufficientCounts[piece] {
			return false
		}
	}
	return true
}

// ChooseMove picks uniformly among the best ranked root moves.
// Difficulty DifficultyMax always plays the best move, DifficultyMin picks among the best ten.
func ChooseMove(rootMoves []common.RootMove, difficulty int, rng *frand.RNG) (common.Move, error) {
	if len(rootMoves) == 0 {
		return common.MoveEmpty, fmt.Errorf("no moves to choose from")
	}
	if difficulty < DifficultyMin || difficulty > DifficultyMax {
		return common.MoveEmpty, fmt.Errorf("bad difficulty %v", difficulty)
	}
	var n = common.Min(len(rootMoves), DifficultyMax+1-difficulty)
	var i int
	if rng != nil {
		i = rng.Intn(n)
	} else {
		i = frand.Intn(n)
	}
	return rootMoves[i].Move, nil
}
