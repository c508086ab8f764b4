package engine

import (
	"context"
	"math"
	"testing"

	. "github.com/ChizhovVadim/CounterTree/pkg/common"
	eval "github.com/ChizhovVadim/CounterTree/pkg/eval/material"
)

const (
	backRankMateFen = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	foolsMateFen    = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFen    = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	kiwipeteFen     = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q2/PPPBBPPP/R3K2R w KQkq - 0 1"
)

func newTestEngine(configure func(o *Options)) *Engine {
	var e = NewEngine(func() interface{} { return eval.NewEvaluationService() })
	if configure != nil {
		configure(&e.Options)
	}
	return e
}

func mustFen(t *testing.T, fen string) *Position {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	return &p
}

// checkTree walks the whole arena and verifies the links and the minimax values.
func checkTree(t *testing.T, s *searcher) {
	t.Helper()
	var nodes = s.tree.nodes
	var childCount = 0
	for i := range nodes {
		var n = &nodes[i]
		if i == 0 {
			if n.parent != noParent {
				t.Error("root has parent", n.parent)
			}
		} else if int(n.parent) >= i {
			t.Error("parent after child", i, n.parent)
		}
		if n.numChildren == 0 {
			continue
		}
		if !n.expanded {
			t.Error("children of unexpanded node", i)
		}
		childCount += int(n.numChildren)
		for j := int(n.childStart); j < int(n.childStart+n.numChildren); j++ {
			if int(nodes[j].parent) != i {
				t.Error("bad parent", i, j, nodes[j].parent)
			}
			if nodes[j].depth != n.depth+1 {
				t.Error("bad depth", i, j)
			}
		}
		if best := s.bestChildEval(n); best != n.eval {
			t.Error("minimax", i, n.eval, best)
		}
	}
	if childCount != len(nodes)-1 {
		t.Error("orphans", childCount, len(nodes))
	}
}

func TestExpandRoot(t *testing.T) {
	var e = newTestEngine(nil)
	if _, err := e.Expand(context.Background(), 1, nil); err != ErrNotSetup {
		t.Error(err)
	}
	var p = NewInitialPosition()
	if err := e.Setup(&p); err != nil {
		t.Fatal(err)
	}
	var completed, err = e.Expand(context.Background(), 1, nil)
	if completed || err != nil {
		t.Error(completed, err)
	}
	if e.main.tree.size() != 21 {
		t.Error(e.main.tree.size())
	}
	if e.main.frontier.Len() != 20 {
		t.Error(e.main.frontier.Len())
	}
	if len(e.RootMoves()) != 20 {
		t.Error(len(e.RootMoves()))
	}
	checkTree(t, &e.main)
}

func TestMinimaxInvariant(t *testing.T) {
	var tests = []struct {
		fen      string
		frontier FrontierKind
	}{
		{InitialPositionFen, FrontierHeap},
		{InitialPositionFen, FrontierBuckets},
		{kiwipeteFen, FrontierHeap},
		{kiwipeteFen, FrontierBuckets},
	}
	for i, test := range tests {
		var e = newTestEngine(func(o *Options) {
			o.Frontier = test.frontier
		})
		if err := e.Setup(mustFen(t, test.fen)); err != nil {
			t.Fatal(err)
		}
		var _, err = e.Expand(context.Background(), 2000, nil)
		if err != nil {
			t.Error(i, test, err)
		}
		if e.Stats().NodesExamined != 2000 {
			t.Error(i, test, e.Stats().NodesExamined)
		}
		checkTree(t, &e.main)
	}
}

func TestBackRankMate(t *testing.T) {
	for _, frontier := range []FrontierKind{FrontierHeap, FrontierBuckets} {
		var e = newTestEngine(func(o *Options) {
			o.DepthLimit = 1
			o.Frontier = frontier
		})
		var si = e.Search(context.Background(), SearchParams{
			Positions: []Position{*mustFen(t, backRankMateFen)},
		})
		if !si.Completed {
			t.Error(frontier, "not completed")
		}
		if si.Eval != WhiteWinsEval-1000 {
			t.Error(frontier, si.Eval)
		}
		if si.Score.Mate != 1 {
			t.Error(frontier, si.Score)
		}
		if len(si.MainLine) != 1 || si.MainLine[0].String() != "a1a8" {
			t.Error(frontier, si.MainLine)
		}
		if len(si.RootMoves) == 0 || si.RootMoves[0].Move.String() != "a1a8" ||
			si.RootMoves[0].State != WhiteWon {
			t.Error(frontier, si.RootMoves)
		}
		checkTree(t, &e.main)
	}
}

func TestTerminalRoot(t *testing.T) {
	var tests = []struct {
		fen   string
		state GameState
		eval  float64
	}{
		{foolsMateFen, BlackWon, BlackWinsEval},
		{stalemateFen, Draw, DrawEval},
	}
	for i, test := range tests {
		var e = newTestEngine(nil)
		if err := e.Setup(mustFen(t, test.fen)); err != nil {
			t.Fatal(err)
		}
		var completed, err = e.Expand(context.Background(), 0, nil)
		if !completed || err != nil {
			t.Error(i, completed, err)
		}
		var root = &e.main.tree.nodes[0]
		if root.position.State != test.state || root.eval != test.eval {
			t.Error(i, test, root.position.State, root.eval)
		}
		if len(e.RootMoves()) != 0 {
			t.Error(i, e.RootMoves())
		}
		if completed, err = e.Expand(context.Background(), 0, nil); !completed || err != nil {
			t.Error(i, "finished search", completed, err)
		}
	}
}

func TestTreeFull(t *testing.T) {
	var e = newTestEngine(func(o *Options) {
		o.MaxNodes = 30
	})
	var p = NewInitialPosition()
	if err := e.Setup(&p); err != nil {
		t.Fatal(err)
	}
	var completed, err = e.Expand(context.Background(), 0, nil)
	if completed || err != ErrTreeFull {
		t.Error(completed, err)
	}
	if e.main.tree.size() != 21 || e.main.frontier.Len() != 20 {
		t.Error(e.main.tree.size(), e.main.frontier.Len())
	}
	if _, err = e.Expand(context.Background(), 0, nil); err != ErrTreeFull {
		t.Error(err)
	}
	if e.Stats().NodesExamined != 1 {
		t.Error(e.Stats())
	}
	checkTree(t, &e.main)
}

func TestDepthLimitZero(t *testing.T) {
	var e = newTestEngine(func(o *Options) {
		o.DepthLimit = 0
	})
	var p = NewInitialPosition()
	if err := e.Setup(&p); err != nil {
		t.Fatal(err)
	}
	var completed, err = e.Expand(context.Background(), 0, nil)
	if !completed || err != nil {
		t.Error(completed, err)
	}
	if e.main.tree.size() != 21 {
		t.Error(e.main.tree.size())
	}
	var rootMoves = e.RootMoves()
	for i := 1; i < len(rootMoves); i++ {
		if rootMoves[i-1].Eval < rootMoves[i].Eval {
			t.Error("order", i, rootMoves[i-1], rootMoves[i])
		}
	}
}

func TestRootMovesBlackOrder(t *testing.T) {
	var e = newTestEngine(func(o *Options) {
		o.DepthLimit = 0
	})
	var start = NewInitialPosition()
	var p, _ = start.MakeMoveLAN("e2e4")
	if err := e.Setup(&p); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Expand(context.Background(), 0, nil); err != nil {
		t.Fatal(err)
	}
	var rootMoves = e.RootMoves()
	if len(rootMoves) != 20 {
		t.Fatal(len(rootMoves))
	}
	for i := 1; i < len(rootMoves); i++ {
		if rootMoves[i-1].Eval > rootMoves[i].Eval {
			t.Error("order", i, rootMoves[i-1], rootMoves[i])
		}
	}
}

func TestStopConditions(t *testing.T) {
	var p = NewInitialPosition()

	var e = newTestEngine(nil)
	e.Setup(&p)
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var completed, err = e.Expand(ctx, 0, nil)
	if completed || err != nil || e.main.tree.size() != 1 {
		t.Error("deadline", completed, err, e.main.tree.size())
	}
	if e.RootMoves() == nil {
		t.Error("stopped search has no root moves")
	}

	var calls = 0
	completed, err = e.Expand(context.Background(), 0, func() bool {
		calls++
		return calls > 3
	})
	if completed || err != nil || e.Stats().NodesExamined != 3 {
		t.Error("interrupt", completed, err, e.Stats().NodesExamined)
	}

	completed, err = e.Expand(context.Background(), 5, nil)
	if completed || err != nil || e.Stats().NodesExamined != 8 {
		t.Error("nodes", completed, err, e.Stats().NodesExamined)
	}
	checkTree(t, &e.main)

	e.Clear()
	if e.RootMoves() != nil {
		t.Error("cleared engine has root moves")
	}
	if _, err = e.Expand(context.Background(), 1, nil); err != ErrNotSetup {
		t.Error(err)
	}
}

func TestParallelExpand(t *testing.T) {
	for _, frontier := range []FrontierKind{FrontierHeap, FrontierBuckets} {
		var e = newTestEngine(func(o *Options) {
			o.Threads = 4
			o.SeedExpansions = 50
			o.SliceExpansions = 100
			o.Frontier = frontier
		})
		var p = NewInitialPosition()
		if err := e.Setup(&p); err != nil {
			t.Fatal(err)
		}
		var _, err = e.Expand(context.Background(), 3000, nil)
		if err != nil {
			t.Error(frontier, err)
		}
		var stats = e.Stats()
		if stats.NodesExamined <= 50 || stats.NodesExamined > 3000 {
			t.Error(frontier, stats)
		}
		checkTree(t, &e.main)
		if len(e.RootMoves()) != 20 {
			t.Error(frontier, len(e.RootMoves()))
		}
	}
}

func TestParallelBackRankMate(t *testing.T) {
	var e = newTestEngine(func(o *Options) {
		o.Threads = 2
		o.SeedExpansions = 1
		o.DepthLimit = 1
	})
	if err := e.Setup(mustFen(t, backRankMateFen)); err != nil {
		t.Fatal(err)
	}
	var completed, err = e.Expand(context.Background(), 0, nil)
	if !completed || err != nil {
		t.Error(completed, err)
	}
	if e.main.tree.nodes[0].eval != WhiteWinsEval-1000 {
		t.Error(e.main.tree.nodes[0].eval)
	}
	checkTree(t, &e.main)
}

func TestParallelTreeFull(t *testing.T) {
	const maxNodes = 6000
	var e = newTestEngine(func(o *Options) {
		o.Threads = 2
		o.SeedExpansions = 1
		o.SliceExpansions = 100_000
		o.MaxNodes = maxNodes
	})
	var p = NewInitialPosition()
	if err := e.Setup(&p); err != nil {
		t.Fatal(err)
	}
	var completed, err = e.Expand(context.Background(), 0, nil)
	if completed || err != ErrTreeFull {
		t.Error(completed, err)
	}
	var size = e.main.tree.size()
	if size > maxNodes || size <= maxNodes-MaxMoves {
		t.Error(size)
	}
	if int64(size) != e.Stats().NodesAdded+1 {
		t.Error(size, e.Stats())
	}
	checkTree(t, &e.main)
}

func TestSearchNodes(t *testing.T) {
	var e = newTestEngine(nil)
	var reports = 0
	var si = e.Search(context.Background(), SearchParams{
		Positions: []Position{NewInitialPosition()},
		Limits:    LimitsType{Nodes: 100},
		Progress:  func(si SearchInfo) { reports++ },
	})
	if si.Expansions != 100 || si.Completed {
		t.Error(si.Expansions, si.Completed)
	}
	if len(si.MainLine) == 0 || len(si.RootMoves) != 20 {
		t.Error(si.MainLine, len(si.RootMoves))
	}
	if reports == 0 {
		t.Error("no progress")
	}
}

func TestTreeGrowth(t *testing.T) {
	var tr = newTree(&Options{MaxNodes: 100, NodeCapMultiplier: 1.5, NodeCapAdder: 10})
	tr.reset(node{parent: noParent})
	if cap(tr.nodes) != 10 {
		t.Error(cap(tr.nodes))
	}
	if !tr.reserve(10) || cap(tr.nodes) != 25 {
		t.Error(cap(tr.nodes))
	}
	if !tr.reserve(60) || cap(tr.nodes) != 61 {
		t.Error(cap(tr.nodes))
	}
	if tr.reserve(100) || tr.size() != 1 {
		t.Error("reserve beyond limit", tr.size())
	}
	if !tr.reserve(99) || cap(tr.nodes) != 100 {
		t.Error(cap(tr.nodes))
	}
}

func TestFrontierOrder(t *testing.T) {
	var heap = newFrontier(&Options{Frontier: FrontierHeap})
	for i, score := range []float64{3, 1, 2, 1, 0.5} {
		heap.Push(i, score)
	}
	var expected = []int{4, 1, 3, 2, 0}
	for i, want := range expected {
		var index, _, ok = heap.Pop()
		if !ok || index != want {
			t.Error("heap", i, index, want)
		}
	}
	if _, _, ok := heap.Pop(); ok {
		t.Error("heap not empty")
	}

	var buckets = newBucketFrontier(10, 0.2, 0)
	buckets.Push(0, 0.05)
	buckets.Push(1, 0.1)
	buckets.Push(2, 0.5)
	buckets.Push(3, 0.01)
	buckets.Push(4, 100)
	buckets.Push(5, -3)
	expected = []int{5, 3, 1, 0, 2, 4}
	for i, want := range expected {
		if index, ok := buckets.Peek(); !ok || index != want {
			t.Error("bucket peek", i, index, want)
		}
		var index, _, ok = buckets.Pop()
		if !ok || index != want {
			t.Error("bucket", i, index, want)
		}
	}
	if buckets.Len() != 0 {
		t.Error(buckets.Len())
	}
	buckets.Push(7, 1)
	buckets.Clear()
	if _, ok := buckets.Peek(); ok {
		t.Error("cleared buckets")
	}
}

func TestUciScore(t *testing.T) {
	var tests = []struct {
		eval      float64
		whiteMove bool
		score     UciScore
	}{
		{WhiteWinsEval - 1000, true, UciScore{Mate: 1}},
		{WhiteWinsEval - 3000, true, UciScore{Mate: 2}},
		{WhiteWinsEval - 1000, false, UciScore{Mate: -1}},
		{BlackWinsEval + 1000, false, UciScore{Mate: 1}},
		{BlackWinsEval + 2000, true, UciScore{Mate: -1}},
		{0.5, true, UciScore{Centipawns: 50}},
		{0.5, false, UciScore{Centipawns: -50}},
	}
	for i, test := range tests {
		if got := newUciScore(test.eval, 1000, test.whiteMove); got != test.score {
			t.Error(i, test, got)
		}
	}
	if mateAdjust(WhiteWinsEval, 1000) != WhiteWinsEval-1000 ||
		mateAdjust(BlackWinsEval, 1000) != BlackWinsEval+1000 ||
		mateAdjust(5, 1000) != 5 {
		t.Error("mateAdjust")
	}
}

// childScores returns the expected frontier score of every child of index
// computed from the eval swings along the path to the root.
func childScores(s *searcher, index int) []float64 {
	var nodes = s.tree.nodes
	var parent = &nodes[index]
	var path = s.options.DepthPenalty * float64(parent.depth)
	for i := index; nodes[i].parent != noParent; i = int(nodes[i].parent) {
		path += math.Abs(nodes[i].eval - nodes[nodes[i].parent].eval)
	}
	var result []float64
	for i := int(parent.childStart); i < int(parent.childStart+parent.numChildren); i++ {
		result = append(result, path+math.Abs(nodes[i].eval-parent.eval)+s.options.DepthPenalty)
	}
	return result
}

func TestChildScores(t *testing.T) {
	for _, fen := range []string{InitialPositionFen, kiwipeteFen} {
		var e = newTestEngine(nil)
		if err := e.Setup(mustFen(t, fen)); err != nil {
			t.Fatal(err)
		}
		for expansion := 0; expansion < 3; expansion++ {
			var index, ok = e.main.frontier.Peek()
			if !ok {
				t.Fatal(fen, "empty frontier")
			}
			if _, err := e.Expand(context.Background(), 1, nil); err != nil {
				t.Fatal(fen, err)
			}
			var parent = &e.main.tree.nodes[index]
			if parent.numChildren == 0 {
				t.Fatal(fen, "no children", index)
			}
			for j, score := range childScores(&e.main, index) {
				var child = &e.main.tree.nodes[int(parent.childStart)+j]
				if math.Abs(child.score-score) > 1e-9 {
					t.Error(fen, expansion, index, j, child.score, score)
				}
				if child.score < e.Options.DepthPenalty*float64(child.depth) {
					t.Error(fen, expansion, "score below depth term", child.score)
				}
			}
		}
	}
}

func TestShorterMateWins(t *testing.T) {
	var e = newTestEngine(nil)
	var p = NewInitialPosition()
	if err := e.Setup(&p); err != nil {
		t.Fatal(err)
	}
	var s = &e.main

	// root (white) has a mate in three plies at index 1 and a mate in one ply at index 2.
	var white, black = p, p
	black.WhiteMove = false
	var mated = black
	mated.State = WhiteWon

	if !s.tree.reserve(4) {
		t.Fatal("reserve")
	}
	var root = &s.tree.nodes[0]
	root.expanded = true
	root.childStart, root.numChildren = 1, 2
	s.tree.add(node{position: black, parent: 0, depth: 1, childStart: 3, numChildren: 1, expanded: true})
	s.tree.add(node{position: mated, static: WhiteWinsEval, eval: WhiteWinsEval, parent: 0, depth: 1, expanded: true})
	s.tree.add(node{position: white, parent: 1, depth: 2, childStart: 4, numChildren: 1, expanded: true})
	s.tree.add(node{position: mated, static: WhiteWinsEval, eval: WhiteWinsEval, parent: 3, depth: 3, expanded: true})
	s.backtrack(3)

	if s.tree.nodes[1].eval != WhiteWinsEval-2*e.Options.MateIncrement {
		t.Error(s.tree.nodes[1].eval)
	}
	if root.eval != WhiteWinsEval-e.Options.MateIncrement {
		t.Error(root.eval)
	}
	checkTree(t, s)

	e.state = stateStopped
	var rootMoves = e.RootMoves()
	if len(rootMoves) != 2 || rootMoves[0].State != WhiteWon {
		t.Error(rootMoves)
	}
	var si = e.currentSearchResult(false)
	if si.Score.Mate != 1 {
		t.Error(si.Score)
	}
}
