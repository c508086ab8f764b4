package arena

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/ChizhovVadim/CounterTree/internal/game"
	"github.com/ChizhovVadim/CounterTree/pkg/common"
)

type IEngine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type Config struct {
	Concurrency int
	// Either Nodes or MoveTime limits every search.
	Nodes       int
	MoveTime    time.Duration
	DifficultyA int
	DifficultyB int
	// Games longer than MaxPlies are adjudicated as draws. Zero means no limit.
	MaxPlies int
	Openings []string
}

type gameInfo struct {
	opening        string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	plies    int
	comment  string
	result   game.Result
}

type Summary struct {
	Wins, Losses, Draws int
	WinningFraction     float64
	EloDifference       float64
	LOS                 float64
}

// Run plays every opening twice between two engines, each engine built once per worker goroutine.
func Run(
	ctx context.Context,
	logger zerolog.Logger,
	config Config,
	newEngineA, newEngineB func() IEngine,
) (Summary, error) {
	logger.Info().
		Int("NumCPU", runtime.NumCPU()).
		Int("GOMAXPROCS", runtime.GOMAXPROCS(0)).
		Int("gameConcurrency", config.Concurrency).
		Msg("arena started")
	defer logger.Info().Msg("arena finished")

	if config.Nodes == 0 && config.MoveTime == 0 {
		return Summary{}, fmt.Errorf("bad time control %+v", config)
	}
	var openings = config.Openings
	if len(openings) == 0 {
		openings = defaultOpenings
	}

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, openings, gameInfos)
	})

	var summary Summary
	g.Go(func() error {
		summary = showResults(logger, gameResults)
		return nil
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < common.Max(config.Concurrency, 1); i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, logger, config, newEngineA(), newEngineB(), gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	return summary, err
}

func loadOpenings(
	ctx context.Context,
	openings []string,
	gameInfos chan<- gameInfo,
) error {
	for i, opening := range openings {
		if _, err := common.NewPositionFromFEN(opening); err != nil {
			return fmt.Errorf("opening %v: %w", i+1, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsWhite: true, gameNumber: 1 + 2*i}:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsWhite: false, gameNumber: 1 + 2*i + 1}:
		}
	}
	return nil
}

func playGames(
	ctx context.Context,
	logger zerolog.Logger,
	config Config,
	engineA, engineB IEngine,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var rng = frand.New()
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, logger, config, engineA, engineB, rng, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func playGame(
	ctx context.Context,
	logger zerolog.Logger,
	config Config,
	engineA, engineB IEngine,
	rng *frand.RNG,
	info gameInfo,
) (gameResult, error) {
	logger.Debug().Int("game", info.gameNumber).Msg("started game")

	engineA.Clear()
	engineB.Clear()

	var startingPos, err = common.NewPositionFromFEN(info.opening)
	if err != nil {
		return gameResult{}, err
	}
	var g = game.New(startingPos)

	var limits common.LimitsType
	if config.Nodes != 0 {
		limits.Nodes = config.Nodes
	} else {
		limits.MoveTime = int(config.MoveTime / time.Millisecond)
	}

	for plies := 0; ; plies++ {
		if result, comment := g.Result(); result != game.ResultNone {
			return gameResult{gameInfo: info, plies: plies, comment: comment, result: result}, nil
		}
		if config.MaxPlies != 0 && plies >= config.MaxPlies {
			return gameResult{gameInfo: info, plies: plies, comment: "max plies", result: game.ResultDraw}, nil
		}
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}

		var eng = engineB
		var difficulty = config.DifficultyB
		if g.Current().WhiteMove == info.engineAIsWhite {
			eng = engineA
			difficulty = config.DifficultyA
		}
		var searchResult = eng.Search(ctx, common.SearchParams{
			Positions: g.Positions(),
			Limits:    limits,
		})
		move, err := game.ChooseMove(searchResult.RootMoves, difficulty, rng)
		if err != nil {
			return gameResult{}, fmt.Errorf("game %v: %w", info.gameNumber, err)
		}
		if !g.MakeMove(move) {
			return gameResult{}, fmt.Errorf("game %v: bad move %v", info.gameNumber, move)
		}
	}
}

func showResults(logger zerolog.Logger, gameResults <-chan gameResult) Summary {
	var games = 0
	var wins, losses, draws int
	var summary Summary
	for gameResult := range gameResults {
		games++
		logger.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Stringer("result", gameResult.result).
			Int("plies", gameResult.plies).
			Str("comment", gameResult.comment).
			Msg("finished game")
		if gameResult.result == game.ResultDraw {
			draws++
		} else if gameResult.result == game.ResultWhiteWins && gameResult.gameInfo.engineAIsWhite ||
			gameResult.result == game.ResultBlackWins && !gameResult.gameInfo.engineAIsWhite {
			wins++
		} else {
			losses++
		}
		summary = computeStat(wins, losses, draws)
		logger.Info().
			Int("wins", wins).
			Int("losses", losses).
			Int("draws", draws).
			Int("games", games).
			Float64("score", summary.WinningFraction).
			Float64("elo", summary.EloDifference).
			Float64("los", summary.LOS).
			Msg("score")
	}
	return summary
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) Summary {
	var games = wins + losses + draws
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	return Summary{
		Wins:            wins,
		Losses:          losses,
		Draws:           draws,
		WinningFraction: winningFraction,
		EloDifference:   eloDifference,
		LOS:             los,
	}
}
