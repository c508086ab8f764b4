package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

var (
	ErrNotSetup      = errors.New("engine: no position set up")
	ErrTreeFull      = errors.New("engine: tree is full")
	ErrSearchRunning = errors.New("engine: search is running")
)

type engineState int

const (
	stateIdle engineState = iota
	stateSeeded
	stateRunning
	stateStopped
	stateFinished
)

func (s engineState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateSeeded:
		return "seeded"
	case stateRunning:
		return "running"
	case stateStopped:
		return "stopped"
	case stateFinished:
		return "finished"
	}
	return "unknown"
}

type IEvaluator interface {
	Evaluate(p *Position) float64
	EvaluateMove(p *Position, eval float64, m Move) float64
}

// Engine grows a best-first tree for one position at a time.
// Setup, Expand and the readers must not be called concurrently;
// a running Expand is stopped through its context or interrupt.
type Engine struct {
	Options     Options
	Logger      zerolog.Logger
	evalBuilder func() interface{}
	main        searcher
	workers     []searcher
	prepared    Options
	state       engineState
	start       time.Time
	mu          sync.Mutex
}

func NewEngine(evalBuilder func() interface{}) *Engine {
	return &Engine{
		Options:     NewOptions(),
		Logger:      zerolog.Nop(),
		evalBuilder: evalBuilder,
	}
}

func (e *Engine) Prepare() {
	if e.main.evaluator != nil && e.prepared == e.Options {
		return
	}
	e.Options.MaxNodes = Max(e.Options.MaxNodes, 1)
	e.Options.Threads = Max(e.Options.Threads, 1)
	e.prepared = e.Options
	e.main = newSearcher(&e.prepared, e.buildEvaluator())
	e.workers = nil
	if e.prepared.Threads > 1 {
		e.workers = make([]searcher, e.prepared.Threads)
		for i := range e.workers {
			e.workers[i] = newSearcher(&e.prepared, e.buildEvaluator())
		}
	}
	e.state = stateIdle
}

// Setup resets the tree to a single root holding p.
func (e *Engine) Setup(p *Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == stateRunning {
		return ErrSearchRunning
	}
	e.Prepare()
	e.main.depthLimit = e.prepared.DepthLimit
	e.main.setup(p)
	e.main.onProgress = nil
	e.state = stateSeeded
	e.Logger.Debug().
		Str("fen", p.String()).
		Float64("eval", e.main.tree.nodes[0].eval).
		Int("depthLimit", e.main.depthLimit).
		Msg("setup")
	return nil
}

// Expand grows the tree until the frontier is empty, ctx is done, nodes expansions
// were made (0 means no limit) or interrupt returns true.
// completed is true only when the frontier was exhausted. A full tree stops the
// expansion with ErrTreeFull. The tree is consistent after every return and
// Expand may be called again to continue.
func (e *Engine) Expand(ctx context.Context, nodes int, interrupt func() bool) (completed bool, err error) {
	e.mu.Lock()
	switch e.state {
	case stateIdle:
		e.mu.Unlock()
		return false, ErrNotSetup
	case stateRunning:
		e.mu.Unlock()
		return false, ErrSearchRunning
	case stateFinished:
		e.mu.Unlock()
		return true, nil
	}
	e.state = stateRunning
	e.mu.Unlock()

	var reason stopReason
	if len(e.workers) > 1 {
		reason = e.expandParallel(ctx, int64(nodes), interrupt)
	} else {
		_, reason = e.main.run(ctx, int64(nodes), interrupt)
	}

	e.mu.Lock()
	if reason == stopExhausted {
		e.state = stateFinished
	} else {
		e.state = stateStopped
	}
	e.mu.Unlock()

	var root = &e.main.tree.nodes[0]
	e.Logger.Debug().
		Stringer("reason", reason).
		Int("nodes", e.main.tree.size()).
		Int64("expansions", e.main.stats.NodesExamined).
		Int("depth", e.main.stats.MaxDepth).
		Float64("eval", root.eval).
		Msg("expand stopped")

	if reason == stopTreeFull {
		return false, ErrTreeFull
	}
	return reason == stopExhausted, nil
}

// RootMoves returns the root children, best first for the side to move.
func (e *Engine) RootMoves() []RootMove {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == stateIdle || e.state == stateRunning {
		return nil
	}
	return e.rootMoves()
}

func (e *Engine) rootMoves() []RootMove {
	var t = &e.main.tree
	var root = &t.nodes[0]
	var result = make([]RootMove, 0, root.numChildren)
	for _, child := range t.children(0) {
		result = append(result, RootMove{
			Move:  child.position.LastMove,
			Eval:  child.eval,
			State: child.position.State,
		})
	}
	var whiteMove = root.position.WhiteMove
	sort.SliceStable(result, func(i, j int) bool {
		if whiteMove {
			return result[i].Eval > result[j].Eval
		}
		return result[i].Eval < result[j].Eval
	})
	return result
}

func (e *Engine) IsSetup() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != stateIdle
}

// RootPosition returns the analysed position, or an empty one before Setup.
func (e *Engine) RootPosition() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == stateIdle {
		return Position{}
	}
	return e.main.tree.nodes[0].position
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.main.stats
}

// Search analyses the last position for the time allowed by the limits.
func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	var p = &searchParams.Positions[len(searchParams.Positions)-1]
	if err := e.Setup(p); err != nil {
		e.Logger.Warn().Err(err).Msg("search setup failed")
		return SearchInfo{}
	}
	if searchParams.Limits.Depth > 0 {
		e.main.depthLimit = searchParams.Limits.Depth
	}
	var tm *simpleTimeManager
	ctx, tm = newSimpleTimeManager(ctx, e.start, searchParams.Limits, p)
	defer tm.Close()

	var lastReport time.Time
	e.main.onProgress = func() {
		var si = e.currentSearchResult(false)
		tm.OnProgress(si)
		if searchParams.Progress != nil &&
			time.Since(e.start) >= e.prepared.ProgressMinTime &&
			time.Since(lastReport) >= e.prepared.ProgressMinTime {
			lastReport = time.Now()
			searchParams.Progress(si)
		}
		e.Logger.Debug().
			Int64("expansions", si.Expansions).
			Int64("nodes", si.Nodes).
			Int("depth", si.Depth).
			Float64("eval", si.Eval).
			Msg("progress")
	}

	var completed, err = e.Expand(ctx, searchParams.Limits.Nodes, searchParams.Interrupt)
	if err != nil {
		e.Logger.Warn().Err(err).Msg("search stopped early")
	}
	var result = e.currentSearchResult(completed)
	if searchParams.Progress != nil {
		searchParams.Progress(result)
	}
	return result
}

func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == stateRunning || e.main.evaluator == nil {
		return
	}
	e.main.tree.nodes = nil
	e.main.frontier.Clear()
	for i := range e.workers {
		e.workers[i].tree.nodes = nil
		e.workers[i].frontier.Clear()
	}
	e.state = stateIdle
}

func (e *Engine) currentSearchResult(completed bool) SearchInfo {
	var root = &e.main.tree.nodes[0]
	return SearchInfo{
		Depth:      e.main.stats.MaxDepth,
		MainLine:   e.mainLine(),
		Score:      newUciScore(root.eval, e.prepared.MateIncrement, root.position.WhiteMove),
		Eval:       root.eval,
		Nodes:      int64(e.main.tree.size()),
		Expansions: e.main.stats.NodesExamined,
		Time:       time.Since(e.start).Milliseconds(),
		RootMoves:  e.rootMoves(),
		Completed:  completed,
	}
}

// mainLine follows the child that decides each node's eval.
func (e *Engine) mainLine() []Move {
	var result []Move
	var t = &e.main.tree
	var index = 0
	for {
		var n = &t.nodes[index]
		if n.numChildren == 0 {
			return result
		}
		var next = -1
		for i := int(n.childStart); i < int(n.childStart+n.numChildren); i++ {
			if e.main.mateAdjust(t.nodes[i].eval) == n.eval {
				next = i
				break
			}
		}
		if next == -1 {
			return result
		}
		result = append(result, t.nodes[next].position.LastMove)
		index = next
	}
}

func (e *Engine) buildEvaluator() IEvaluator {
	var evaluationService = e.evalBuilder()
	if ev, ok := evaluationService.(IEvaluator); ok {
		return ev
	}
	panic(errors.New("bad eval builder"))
}
