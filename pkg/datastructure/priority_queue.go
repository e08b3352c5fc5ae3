package datastructure

import "errors"

var ErrEmptyQueue = errors.New("priority queue is empty")

type PriorityQueueNode[T any] struct {
	Rank float64
	Item T
	seq  uint64
}

// MinHeap binary heap priorityqueue. Entries with equal Rank come out in
// insertion order, enforced with a monotonic sequence number.
type MinHeap[T any] struct {
	heap    []PriorityQueueNode[T]
	counter uint64
}

func NewMinHeap[T any]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
	}
}

func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].Rank != h.heap[j].Rank {
		return h.heap[i].Rank < h.heap[j].Rank
	}
	return h.heap[i].seq < h.heap[j].seq
}

func (h *MinHeap[T]) heapifyUp(index int) {
	for index > 0 && h.less(index, h.parent(index)) {
		h.heap[index], h.heap[h.parent(index)] = h.heap[h.parent(index)], h.heap[index]
		index = h.parent(index)
	}
}

func (h *MinHeap[T]) heapifyDown(index int) {
	smallest := index
	left := h.leftChild(index)
	right := h.rightChild(index)

	if left < len(h.heap) && h.less(left, smallest) {
		smallest = left
	}
	if right < len(h.heap) && h.less(right, smallest) {
		smallest = right
	}
	if smallest != index {
		h.heap[index], h.heap[smallest] = h.heap[smallest], h.heap[index]
		h.heapifyDown(smallest)
	}
}

func (h *MinHeap[T]) Insert(rank float64, item T) {
	h.heap = append(h.heap, PriorityQueueNode[T]{Rank: rank, Item: item, seq: h.counter})
	h.counter++
	h.heapifyUp(len(h.heap) - 1)
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrEmptyQueue
	}
	min := h.heap[0]
	h.heap[0] = h.heap[len(h.heap)-1]
	h.heap = h.heap[:len(h.heap)-1]
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}
	return min, nil
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}
