package searchengine

import (
	"github.com/MarioFengW/route-planning/pkg/datastructure"
)

// searchNode is one frontier entry. Parent pointers form the search tree used
// for path reconstruction; g is accumulated path cost in meter.
type searchNode struct {
	vertex int64
	parent *searchNode
	g      float64
	depth  int
}

// frontier abstracts the strategy's expansion discipline. FIFO gives bfs,
// LIFO gives dfs, a min-heap keyed by g (or g+h) gives ucs and astar. All
// three keep equal-priority entries in insertion order.
type frontier interface {
	push(n *searchNode, priority float64)
	pop() (*searchNode, bool)
	size() int
}

type fifoFrontier struct {
	queue []*searchNode
}

func (f *fifoFrontier) push(n *searchNode, _ float64) {
	f.queue = append(f.queue, n)
}

func (f *fifoFrontier) pop() (*searchNode, bool) {
	if len(f.queue) == 0 {
		return nil, false
	}
	n := f.queue[0]
	f.queue = f.queue[1:]
	return n, true
}

func (f *fifoFrontier) size() int { return len(f.queue) }

type lifoFrontier struct {
	stack []*searchNode
}

func (f *lifoFrontier) push(n *searchNode, _ float64) {
	f.stack = append(f.stack, n)
}

func (f *lifoFrontier) pop() (*searchNode, bool) {
	if len(f.stack) == 0 {
		return nil, false
	}
	n := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return n, true
}

func (f *lifoFrontier) size() int { return len(f.stack) }

type priorityFrontier struct {
	heap *datastructure.MinHeap[*searchNode]
}

func newPriorityFrontier() *priorityFrontier {
	return &priorityFrontier{heap: datastructure.NewMinHeap[*searchNode]()}
}

func (f *priorityFrontier) push(n *searchNode, priority float64) {
	f.heap.Insert(priority, n)
}

func (f *priorityFrontier) pop() (*searchNode, bool) {
	item, err := f.heap.ExtractMin()
	if err != nil {
		return nil, false
	}
	return item.Item, true
}

func (f *priorityFrontier) size() int { return f.heap.Size() }
