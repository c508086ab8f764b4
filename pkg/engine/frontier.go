package engine

type frontierEntry struct {
	score float64
	index int32
}

// frontier holds the nodes that are waiting for expansion, lowest score first.
type frontier interface {
	Push(index int, score float64)
	Peek() (index int, ok bool)
	Pop() (index int, score float64, ok bool)
	Len() int
	Clear()
}

func newFrontier(options *Options) frontier {
	if options.Frontier == FrontierBuckets {
		return newBucketFrontier(options.BucketCount, options.BucketWidth, options.BucketStart)
	}
	return &heapFrontier{}
}

// heapFrontier is a binary min-heap. Equal scores are ordered by node index.
type heapFrontier struct {
	items []frontierEntry
}

func (h *heapFrontier) less(i, j int) bool {
	var a, b = &h.items[i], &h.items[j]
	if a.score != b.score {
		return a.score < b.score
	}
	return a.index < b.index
}

func (h *heapFrontier) Push(index int, score float64) {
	h.items = append(h.items, frontierEntry{score: score, index: int32(index)})
	var i = len(h.items) - 1
	for i > 0 {
		var parent = (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *heapFrontier) Peek() (int, bool) {
	if len(h.items) == 0 {
		return 0, false
	}
	return int(h.items[0].index), true
}

func (h *heapFrontier) Pop() (int, float64, bool) {
	if len(h.items) == 0 {
		return 0, 0, false
	}
	var top = h.items[0]
	var last = len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]

	var i = 0
	for {
		var smallest = i
		var l, r = 2*i + 1, 2*i + 2
		if l < last && h.less(l, smallest) {
			smallest = l
		}
		if r < last && h.less(r, smallest) {
			smallest = r
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return int(top.index), top.score, true
}

func (h *heapFrontier) Len() int {
	return len(h.items)
}

func (h *heapFrontier) Clear() {
	h.items = h.items[:0]
}

// bucketFrontier groups scores into fixed-width buckets.
// Inside a bucket the most recently pushed node comes out first.
type bucketFrontier struct {
	buckets [][]frontierEntry
	width   float64
	start   float64
	lowest  int
	size    int
}

func newBucketFrontier(count int, width, start float64) *bucketFrontier {
	return &bucketFrontier{
		buckets: make([][]frontierEntry, count),
		width:   width,
		start:   start,
		lowest:  count,
	}
}

func (b *bucketFrontier) bucket(score float64) int {
	var i = int((score - b.start) / b.width)
	if score < b.start {
		i = 0
	}
	if i >= len(b.buckets) {
		i = len(b.buckets) - 1
	}
	return i
}

func (b *bucketFrontier) Push(index int, score float64) {
	var i = b.bucket(score)
	b.buckets[i] = append(b.buckets[i], frontierEntry{score: score, index: int32(index)})
	if i < b.lowest {
		b.lowest = i
	}
	b.size++
}

func (b *bucketFrontier) seek() bool {
	if b.size == 0 {
		return false
	}
	for len(b.buckets[b.lowest]) == 0 {
		b.lowest++
	}
	return true
}

func (b *bucketFrontier) Peek() (int, bool) {
	if !b.seek() {
		return 0, false
	}
	var items = b.buckets[b.lowest]
	return int(items[len(items)-1].index), true
}

func (b *bucketFrontier) Pop() (int, float64, bool) {
	if !b.seek() {
		return 0, 0, false
	}
	var items = b.buckets[b.lowest]
	var top = items[len(items)-1]
	b.buckets[b.lowest] = items[:len(items)-1]
	b.size--
	return int(top.index), top.score, true
}

func (b *bucketFrontier) Len() int {
	return b.size
}

func (b *bucketFrontier) Clear() {
	for i := range b.buckets {
		b.buckets[i] = b.buckets[i][:0]
	}
	b.lowest = len(b.buckets)
	b.size = 0
}
