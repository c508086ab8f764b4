package engine

import (
	"fmt"
	"time"
)

type FrontierKind int

const (
	FrontierHeap FrontierKind = iota
	FrontierBuckets
)

func (k FrontierKind) String() string {
	switch k {
	case FrontierHeap:
		return "heap"
	case FrontierBuckets:
		return "buckets"
	}
	return fmt.Sprintf("FrontierKind(%d)", int(k))
}

type Options struct {
	// Nodes deeper than DepthLimit are created but never expanded.
	DepthLimit int
	// Each ply between a position and a forced mate moves the mate eval this much towards zero.
	MateIncrement float64
	// Added to the priority score per ply of depth.
	DepthPenalty float64
	// Arena capacity in nodes.
	MaxNodes          int
	NodeCapMultiplier float64
	NodeCapAdder      int
	Frontier          FrontierKind
	BucketCount       int
	BucketWidth       float64
	BucketStart       float64
	Threads           int
	// Expansions done on the main tree before work is dealt to workers.
	SeedExpansions int
	// Expansions a worker does between two redistributions.
	SliceExpansions int
	// Expansions between two progress reports.
	ProgressInterval int
	ProgressMinTime  time.Duration
}

func NewOptions() Options {
	return Options{
		DepthLimit:        30,
		MateIncrement:     1000,
		DepthPenalty:      10.0,
		MaxNodes:          1_000_000,
		NodeCapMultiplier: 1.5,
		NodeCapAdder:      10,
		Frontier:          FrontierHeap,
		BucketCount:       5000,
		BucketWidth:       0.2,
		BucketStart:       0.0,
		Threads:           1,
		SeedExpansions:    500,
		SliceExpansions:   2000,
		ProgressInterval:  10_000,
		ProgressMinTime:   500 * time.Millisecond,
	}
}
