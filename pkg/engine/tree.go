package engine

import (
	. "github.com/ChizhovVadim/CounterTree/pkg/common"
)

const noParent = -1

type node struct {
	position    Position
	// static is the evaluator's score of position, eval the minimax value of the expanded subtree.
	static      float64
	eval        float64
	score       float64
	// base is the eval swing above a subtree root that was copied from another arena.
	base        float64
	parent      int32
	childStart  int32
	numChildren int32
	depth       int16
	expanded    bool
}

func (n *node) terminal() bool {
	return n.position.Terminal()
}

// tree is an append-only arena. Node indices stay valid when the backing array grows.
type tree struct {
	nodes       []node
	maxNodes    int
	capMultiple float64
	capAdder    int
}

func newTree(options *Options) tree {
	return tree{
		maxNodes:    options.MaxNodes,
		capMultiple: options.NodeCapMultiplier,
		capAdder:    options.NodeCapAdder,
	}
}

func (t *tree) reset(root node) {
	t.nodes = t.nodes[:0]
	t.reserve(1)
	t.nodes = append(t.nodes, root)
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) remaining() int {
	return t.maxNodes - len(t.nodes)
}

// reserve makes room for n more nodes and reports false if the arena limit does not allow it.
func (t *tree) reserve(n int) bool {
	var required = len(t.nodes) + n
	if required > t.maxNodes {
		return false
	}
	if required <= cap(t.nodes) {
		return true
	}
	var newCap = Max(int(float64(cap(t.nodes))*t.capMultiple)+t.capAdder, required)
	newCap = Min(newCap, t.maxNodes)
	var nodes = make([]node, len(t.nodes), newCap)
	copy(nodes, t.nodes)
	t.nodes = nodes
	return true
}

// add appends a node. The caller must have reserved room for it.
func (t *tree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree) children(index int) []node {
	var n = &t.nodes[index]
	return t.nodes[n.childStart : n.childStart+n.numChildren]
}
