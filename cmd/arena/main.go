package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterTree/internal/arena"
	"github.com/ChizhovVadim/CounterTree/pkg/engine"
	eval "github.com/ChizhovVadim/CounterTree/pkg/eval/material"
)

var (
	config       arena.Config
	openingsPath string
	frontierB    string
)

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	var err = run(logger)
	if err != nil {
		logger.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	flag.IntVar(&config.Concurrency, "concurrency", 4, "Number of games played at once")
	flag.IntVar(&config.Nodes, "nodes", 20_000, "Expansions per move")
	flag.DurationVar(&config.MoveTime, "movetime", 0, "Time per move, used when nodes is 0")
	flag.IntVar(&config.DifficultyA, "difficultya", 9, "Difficulty of engine A (0-9)")
	flag.IntVar(&config.DifficultyB, "difficultyb", 9, "Difficulty of engine B (0-9)")
	flag.IntVar(&config.MaxPlies, "maxplies", 400, "Adjudicate longer games as draws")
	flag.StringVar(&openingsPath, "openings", "", "File with one FEN per line")
	flag.StringVar(&frontierB, "frontierb", engine.FrontierBuckets.String(), "Frontier of engine B")
	flag.Parse()

	if openingsPath != "" {
		var openings, err = readOpenings(openingsPath)
		if err != nil {
			return err
		}
		config.Openings = openings
	}

	var frontier = engine.FrontierHeap
	if frontierB == engine.FrontierBuckets.String() {
		frontier = engine.FrontierBuckets
	}

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	_, err := arena.Run(ctx, logger, config,
		func() arena.IEngine { return newEngine(engine.FrontierHeap) },
		func() arena.IEngine { return newEngine(frontier) })
	return err
}

func newEngine(frontier engine.FrontierKind) *engine.Engine {
	var eng = engine.NewEngine(func() interface{} { return eval.NewEvaluationService() })
	eng.Options.Threads = 1
	eng.Options.Frontier = frontier
	eng.Prepare()
	return eng
}

func readOpenings(path string) ([]string, error) {
	var file, err = os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var result []string
	var scanner = bufio.NewScanner(file)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line != "" {
			result = append(result, line)
		}
	}
	return result, scanner.Err()
}
