package main

import (
	"bufio"
	"errors"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterTree/pkg/engine"
	eval "github.com/ChizhovVadim/CounterTree/pkg/eval/material"
	"github.com/ChizhovVadim/CounterTree/pkg/uci"
)

// bridge talks the numeric line protocol on stdin/stdout.
// The "go" command switches the same session over to UCI.
func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var eng = engine.NewEngine(func() interface{} { return eval.NewEvaluationService() })
	eng.Logger = logger
	var bridge = uci.NewBridge(eng)

	var scanner = bufio.NewScanner(os.Stdin)
	var err = uci.RunCli(logger, scanner, bridge)
	if errors.Is(err, uci.ErrUciMode) {
		logger.Info().Msg("switch to uci")
		var protocol = uci.New("CounterTree", "Vadim Chizhov", "dev", eng,
			[]uci.Option{
				&uci.IntOption{Name: "Threads", Min: 1, Max: runtime.NumCPU(), Value: &eng.Options.Threads},
				&uci.IntOption{Name: "DepthLimit", Min: 0, Max: 1000, Value: &eng.Options.DepthLimit},
			},
		)
		protocol.Run(logger, scanner)
		return
	}
	if err != nil && !errors.Is(err, uci.ErrQuit) {
		logger.Error().Err(err).Msg("bridge failed")
		os.Exit(1)
	}
}
