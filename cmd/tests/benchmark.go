package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ChizhovVadim/CounterTree/pkg/common"
)

var benchmarkFens = []string{
	common.InitialPositionFen,
	"r1bqkbnr/1ppp1ppp/p1n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

func runBenchmark(nodes, threads int) error {
	logger.Info().Int("nodes", nodes).Int("threads", threads).Msg("benchmark started")
	var eng = newEngine(threads)
	var ctx = context.Background()
	var start = time.Now()
	var expansions, treeNodes int64
	for _, fen := range benchmarkFens {
		var p, err = common.NewPositionFromFEN(fen)
		if err != nil {
			return err
		}
		var si = eng.Search(ctx, common.SearchParams{
			Positions: []common.Position{p},
			Limits:    common.LimitsType{Nodes: nodes},
		})
		expansions += si.Expansions
		treeNodes += si.Nodes
		var best = "-"
		if len(si.MainLine) != 0 {
			best = si.MainLine[0].String()
		}
		fmt.Println(fen, "bestmove", best, "eval", si.Eval)
	}
	var elapsed = time.Since(start)
	fmt.Println("Time", elapsed)
	fmt.Println("Expansions", expansions)
	fmt.Println("Nodes", treeNodes)
	fmt.Println("kNPS", treeNodes/(elapsed.Milliseconds()+1))
	return nil
}
