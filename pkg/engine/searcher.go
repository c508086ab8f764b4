package engine

import (
	"context"
	"math"

	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

type stopReason int

const (
	stopNone stopReason = iota
	stopExhausted
	stopDeadline
	stopNodes
	stopInterrupt
	stopTreeFull
)

func (r stopReason) String() string {
	switch r {
	case stopNone:
		return "none"
	case stopExhausted:
		return "exhausted"
	case stopDeadline:
		return "deadline"
	case stopNodes:
		return "nodes"
	case stopInterrupt:
		return "interrupt"
	case stopTreeFull:
		return "tree full"
	}
	return "unknown"
}

type Stats struct {
	NodesAdded    int64
	MovesAdded    int64
	NodesExamined int64
	WhiteWins     int64
	BlackWins     int64
	Draws         int64
	MaxDepth      int
}

func (s *Stats) add(other *Stats) {
	s.NodesAdded += other.NodesAdded
	s.MovesAdded += other.MovesAdded
	s.NodesExamined += other.NodesExamined
	s.WhiteWins += other.WhiteWins
	s.BlackWins += other.BlackWins
	s.Draws += other.Draws
	s.MaxDepth = Max(s.MaxDepth, other.MaxDepth)
}

// searcher owns one arena and one frontier. The engine has a main searcher
// and, with several threads, one private searcher per worker.
type searcher struct {
	options    *Options
	evaluator  IEvaluator
	tree       tree
	frontier   frontier
	depthLimit int
	stats      Stats
	onProgress func()
	moves      [MaxMoves]Move
	children   []node
}

func newSearcher(options *Options, evaluator IEvaluator) searcher {
	return searcher{
		options:    options,
		evaluator:  evaluator,
		tree:       newTree(options),
		frontier:   newFrontier(options),
		depthLimit: options.DepthLimit,
	}
}

func (s *searcher) setup(p *Position) {
	var static = s.evaluator.Evaluate(p)
	s.tree.reset(node{
		position: *p,
		static:   static,
		eval:     static,
		parent:   noParent,
	})
	s.frontier.Clear()
	s.frontier.Push(0, 0)
	s.stats = Stats{}
}

// run expands nodes until the frontier is empty or a stop condition holds.
// Stop conditions are only checked between two expansions.
func (s *searcher) run(ctx context.Context, limit int64,
	interrupt func() bool) (expansions int64, reason stopReason) {
	for {
		if limit > 0 && expansions >= limit {
			return expansions, stopNodes
		}
		select {
		case <-ctx.Done():
			return expansions, stopDeadline
		default:
		}
		if interrupt != nil && interrupt() {
			return expansions, stopInterrupt
		}
		if reason = s.expandNext(); reason != stopNone {
			return expansions, reason
		}
		expansions++
		if s.onProgress != nil && s.options.ProgressInterval > 0 &&
			s.stats.NodesExamined%int64(s.options.ProgressInterval) == 0 {
			s.onProgress()
		}
	}
}

// expandNext expands the frontier node with the lowest score.
// The tree is not touched when there is no room for the children.
func (s *searcher) expandNext() stopReason {
	var index, ok = s.frontier.Peek()
	if !ok {
		return stopExhausted
	}

	var parent = &s.tree.nodes[index]
	var p = &parent.position
	var ml = p.GenerateMoves(s.moves[:0])
	s.children = s.children[:0]
	var child node
	for _, m := range ml {
		if !p.MakeMove(m, &child.position) {
			continue
		}
		child.static = s.evaluator.EvaluateMove(p, parent.static, m)
		if child.static >= WhiteWinsEval {
			child.position.State = WhiteWon
		} else if child.static <= BlackWinsEval {
			child.position.State = BlackWon
		}
		s.children = append(s.children, child)
	}

	if !s.tree.reserve(len(s.children)) {
		return stopTreeFull
	}
	s.frontier.Pop()
	s.stats.NodesExamined++
	s.stats.MovesAdded += int64(len(ml))

	parent = &s.tree.nodes[index]
	parent.expanded = true
	if len(s.children) == 0 {
		s.setTerminal(parent)
		s.backtrack(int(parent.parent))
		return stopNone
	}

	var depth = parent.depth + 1
	parent.childStart = int32(s.tree.size())
	parent.numChildren = int32(len(s.children))
	s.stats.NodesAdded += int64(len(s.children))
	s.stats.MaxDepth = Max(s.stats.MaxDepth, int(depth))
	for i := range s.children {
		var c = &s.children[i]
		c.eval = c.static
		c.parent = int32(index)
		c.depth = depth
		s.tree.add(*c)
		switch c.position.State {
		case WhiteWon:
			s.stats.WhiteWins++
		case BlackWon:
			s.stats.BlackWins++
		}
	}

	s.backtrack(index)

	if int(depth) > s.depthLimit {
		return stopNone
	}
	var score = s.pathScore(index)
	parent = &s.tree.nodes[index]
	for i := int(parent.childStart); i < int(parent.childStart+parent.numChildren); i++ {
		var c = &s.tree.nodes[i]
		if c.terminal() {
			continue
		}
		c.score = score + math.Abs(c.eval-parent.eval) + s.options.DepthPenalty
		s.frontier.Push(i, c.score)
	}
	return stopNone
}

func (s *searcher) setTerminal(n *node) {
	switch {
	case !n.position.IsCheck():
		n.position.State = Draw
		n.eval = DrawEval
		s.stats.Draws++
	case n.position.WhiteMove:
		n.position.State = BlackWon
		n.eval = BlackWinsEval
		s.stats.BlackWins++
	default:
		n.position.State = WhiteWon
		n.eval = WhiteWinsEval
		s.stats.WhiteWins++
	}
	n.static = n.eval
}

// backtrack recomputes minimax evals from index towards the root
// and stops at the first node whose eval does not change.
func (s *searcher) backtrack(index int) {
	for index != noParent {
		var n = &s.tree.nodes[index]
		if n.numChildren == 0 {
			return
		}
		var best = s.bestChildEval(n)
		if best == n.eval {
			return
		}
		n.eval = best
		index = int(n.parent)
	}
}

func (s *searcher) bestChildEval(n *node) float64 {
	var children = s.tree.nodes[n.childStart : n.childStart+n.numChildren]
	var best = s.mateAdjust(children[0].eval)
	for i := 1; i < len(children); i++ {
		var eval = s.mateAdjust(children[i].eval)
		if n.position.WhiteMove {
			best = math.Max(best, eval)
		} else {
			best = math.Min(best, eval)
		}
	}
	return best
}

func (s *searcher) mateAdjust(eval float64) float64 {
	return mateAdjust(eval, s.options.MateIncrement)
}

// swingSum adds up the eval differences along the path from index to the root of the arena.
// A subtree dealt to a worker keeps the sum above its root in base.
func (s *searcher) swingSum(index int) float64 {
	var sum = 0.0
	for {
		var n = &s.tree.nodes[index]
		if n.parent == noParent {
			return sum + n.base
		}
		sum += math.Abs(n.eval - s.tree.nodes[n.parent].eval)
		index = int(n.parent)
	}
}

func (s *searcher) pathScore(index int) float64 {
	return s.swingSum(index) + s.options.DepthPenalty*float64(s.tree.nodes[index].depth)
}
