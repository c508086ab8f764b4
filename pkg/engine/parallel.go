package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

const (
	// a worker share always has room for the children of any position
	workerMinNodes = 1024
	dealPerWorker  = 64
)

// expandParallel grows the main tree in slices. Every slice deals the best frontier
// nodes to the workers, lets each worker grow its private arena and grafts the
// arenas back onto the main tree. Stop conditions are checked between slices.
func (e *Engine) expandParallel(ctx context.Context, limit int64,
	interrupt func() bool) stopReason {

	var m = &e.main
	var threads = len(e.workers)
	var total int64

	var left = func() int64 {
		if limit <= 0 {
			return 0
		}
		return limit - total
	}

	if m.stats.NodesExamined < int64(e.prepared.SeedExpansions) {
		var seed = int64(e.prepared.SeedExpansions) - m.stats.NodesExamined
		if limit > 0 {
			seed = Min(seed, limit)
		}
		var n, reason = m.run(ctx, seed, interrupt)
		total += n
		if reason != stopNodes || (limit > 0 && total >= limit) {
			return reason
		}
	}

	for {
		if limit > 0 && total >= limit {
			return stopNodes
		}
		select {
		case <-ctx.Done():
			return stopDeadline
		default:
		}
		if interrupt != nil && interrupt() {
			return stopInterrupt
		}

		var slice = int64(e.prepared.SliceExpansions)
		if m.frontier.Len() < threads ||
			m.tree.remaining() < threads*workerMinNodes ||
			(limit > 0 && left() < int64(threads)) {
			if limit > 0 {
				slice = Min(slice, left())
			}
			var n, reason = m.run(ctx, slice, interrupt)
			total += n
			if reason != stopNodes {
				return reason
			}
			continue
		}

		if limit > 0 {
			slice = Min(slice, left()/int64(threads))
		}
		total += e.runWorkers(ctx, slice)
		if m.onProgress != nil {
			m.onProgress()
		}
	}
}

// runWorkers deals frontier nodes, runs one slice on every worker and grafts the results.
func (e *Engine) runWorkers(ctx context.Context, slice int64) int64 {
	var m = &e.main
	var threads = len(e.workers)
	var share = m.tree.remaining() / threads

	var deals = make([][]frontierEntry, threads)
	for i := 0; i < threads*dealPerWorker; i++ {
		var index, score, ok = m.frontier.Pop()
		if !ok {
			break
		}
		var w = i % threads
		deals[w] = append(deals[w], frontierEntry{score: score, index: int32(index)})
	}

	var expansions = make([]int64, threads)
	var reasons = make([]stopReason, threads)
	var g, gctx = errgroup.WithContext(ctx)
	for i := range e.workers {
		if len(deals[i]) == 0 {
			continue
		}
		var i = i
		var w = &e.workers[i]
		w.setupRoots(m, deals[i], share)
		g.Go(func() error {
			// A worker stop reason ends only its own slice. Deadline, node limit
			// and the full tree are checked again on the main tree after the join.
			expansions[i], reasons[i] = w.run(gctx, slice, nil)
			return nil
		})
	}
	// workers always return nil
	_ = g.Wait()

	var total int64
	var full = 0
	for i := range e.workers {
		if len(deals[i]) == 0 {
			continue
		}
		m.graft(&e.workers[i], deals[i])
		m.stats.add(&e.workers[i].stats)
		total += expansions[i]
		if reasons[i] == stopTreeFull {
			full++
		}
	}
	if full != 0 {
		e.Logger.Debug().
			Int("workers", full).
			Int("remaining", m.tree.remaining()).
			Msg("worker share full")
	}
	return total
}

// setupRoots fills the arena with copies of frontier nodes of the main tree.
// Each copy remembers the eval swing of its path in the main tree.
func (s *searcher) setupRoots(main *searcher, roots []frontierEntry, share int) {
	s.tree.maxNodes = len(roots) + share
	s.tree.nodes = s.tree.nodes[:0]
	s.tree.reserve(len(roots))
	s.frontier.Clear()
	s.stats = Stats{}
	s.depthLimit = main.depthLimit
	for _, r := range roots {
		var n = main.tree.nodes[r.index]
		n.parent = noParent
		n.base = main.swingSum(int(r.index))
		s.frontier.Push(s.tree.add(n), r.score)
	}
}

// graft appends the arena of a worker to the main tree.
// Worker node i maps to roots[i] for a root and to a new main node otherwise.
func (s *searcher) graft(w *searcher, roots []frontierEntry) {
	var r = len(roots)
	var base = s.tree.size()
	var translate = func(i int32) int32 {
		if int(i) < r {
			return roots[i].index
		}
		return int32(base) + i - int32(r)
	}

	s.tree.reserve(w.tree.size() - r)
	for i := r; i < w.tree.size(); i++ {
		var n = w.tree.nodes[i]
		n.parent = translate(n.parent)
		if n.numChildren != 0 {
			n.childStart = translate(n.childStart)
		}
		s.tree.add(n)
	}

	for {
		var index, score, ok = w.frontier.Pop()
		if !ok {
			break
		}
		s.frontier.Push(int(translate(int32(index))), score)
	}

	for i := 0; i < r; i++ {
		var wn = &w.tree.nodes[i]
		if !wn.expanded {
			continue
		}
		var mn = &s.tree.nodes[roots[i].index]
		mn.expanded = true
		mn.position.State = wn.position.State
		mn.static = wn.static
		mn.eval = wn.eval
		mn.numChildren = wn.numChildren
		if wn.numChildren != 0 {
			mn.childStart = translate(wn.childStart)
		}
		s.backtrack(int(mn.parent))
	}
}
