package main

import (
	"fmt"
	"time"

	"github.com/ChizhovVadim/CounterTree/pkg/common"
)

var perftFens = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
}

// runPerft prints the leaf count below every root move, then the total.
func runPerft(fen string, depth int) error {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	logger.Info().Str("fen", fen).Int("depth", depth).Msg("perft started")
	var start = time.Now()
	var total = 0
	var buffer [common.MaxMoves]common.Move
	for _, move := range p.GenerateLegalMoves(buffer[:0]) {
		var child common.Position
		p.MakeMove(move, &child)
		var nodes = common.Perft(&child, depth-1)
		fmt.Println(move, nodes)
		total += nodes
	}
	var elapsed = time.Since(start)
	fmt.Println("Nodes", total)
	logger.Info().
		Int("nodes", total).
		Dur("elapsed", elapsed).
		Msg("perft finished")
	return nil
}
