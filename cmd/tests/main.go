package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterTree/pkg/engine"
	eval "github.com/ChizhovVadim/CounterTree/pkg/eval/material"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	var err = run(os.Args)
	if err != nil {
		logger.Error().Err(err).Msg("tests failed")
		os.Exit(1)
	}
}

func run(osArgs []string) error {
	var args = NewCommandArgs(osArgs)
	var handler = NewCommandHandler()
	handler.Add("perft", func(args *CommandArgs) error {
		return runPerft(args.GetString("fen", perftFens[0]), args.GetInt("depth", 4))
	})
	handler.Add("verify", func(args *CommandArgs) error {
		return runVerify(args.GetInt("games", 100), args.GetInt("plies", 120))
	})
	handler.Add("bench", func(args *CommandArgs) error {
		return runBenchmark(args.GetInt("nodes", 20_000), args.GetInt("threads", 1))
	})
	handler.Add("profile", func(args *CommandArgs) error {
		return runProfile(args.GetString("dir", "."), args.GetDuration("movetime", 5*time.Second))
	})
	return handler.Execute(args)
}

func newEngine(threads int) *engine.Engine {
	var eng = engine.NewEngine(func() interface{} { return eval.NewEvaluationService() })
	eng.Options.Threads = threads
	eng.Logger = logger
	return eng
}
