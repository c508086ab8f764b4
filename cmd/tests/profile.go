package main

import (
	"context"
	"time"

	"github.com/pkg/profile"

	"github.com/ChizhovVadim/CounterTree/pkg/common"
)

// go tool pprof cpu.pprof
func runProfile(dir string, moveTime time.Duration) error {
	logger.Info().Str("dir", dir).Dur("movetime", moveTime).Msg("profile started")
	defer logger.Info().Msg("profile finished")

	var p, err = common.NewPositionFromFEN("r1bqkbnr/1ppp1ppp/p1n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4")
	if err != nil {
		return err
	}
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()

	var eng = newEngine(1)
	eng.Search(context.Background(), common.SearchParams{
		Positions: []common.Position{p},
		Limits:    common.LimitsType{MoveTime: int(moveTime / time.Millisecond)},
	})
	return nil
}
