package main

import (
	"fmt"
	"sort"

	"github.com/notnil/chess"
	"golang.org/x/exp/slices"
	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterTree/pkg/common"
)

// runVerify plays random games and compares the legal moves of every position
// with an independent move generator.
func runVerify(games, plies int) error {
	logger.Info().Int("games", games).Int("plies", plies).Msg("verify started")
	var positions = 0
	for i := 0; i < games; i++ {
		var p = common.NewInitialPosition()
		for ply := 0; ply < plies; ply++ {
			var fen = p.String()
			var ours = legalMoveNames(&p)
			theirs, err := oracleMoveNames(fen)
			if err != nil {
				return err
			}
			positions++
			if !slices.Equal(ours, theirs) {
				return fmt.Errorf("game %v ply %v %v: %v != %v", i+1, ply, fen, ours, theirs)
			}
			if len(ours) == 0 {
				break
			}
			var child, ok = p.MakeMoveLAN(ours[frand.Intn(len(ours))])
			if !ok {
				return fmt.Errorf("move rejected %v", fen)
			}
			p = child
		}
	}
	logger.Info().Int("positions", positions).Msg("verify finished")
	return nil
}

func positionMoveNames(fen string) ([]string, error) {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return legalMoveNames(&p), nil
}

func legalMoveNames(p *common.Position) []string {
	var buffer [common.MaxMoves]common.Move
	var result []string
	for _, m := range p.GenerateLegalMoves(buffer[:0]) {
		result = append(result, m.String())
	}
	sort.Strings(result)
	return result
}

func oracleMoveNames(fen string) ([]string, error) {
	var opt, err = chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	var game = chess.NewGame(opt)
	var result []string
	for _, m := range game.ValidMoves() {
		result = append(result, chess.UCINotation{}.Encode(game.Position(), m))
	}
	sort.Strings(result)
	return result, nil
}
