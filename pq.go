package mazesearch

import (
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

// PriorityQueueItem is one frontier entry. The same node may be queued more
// than once when its g-score improves; older entries are skipped on pop.
type PriorityQueueItem[NodeType comparable] struct {
	Node     NodeType
	Key      int
	Sequence uint64
}

// PriorityQueue orders items by Key, then by Sequence, so that among equal
// keys the earliest inserted item comes out first.
type PriorityQueue[NodeType comparable] struct {
	heap     *binaryheap.Heap
	sequence uint64
}

func NewPriorityQueue[NodeType comparable]() *PriorityQueue[NodeType] {
	return &PriorityQueue[NodeType]{heap: binaryheap.NewWith(itemComparator[NodeType]())}
}

func itemComparator[NodeType comparable]() utils.Comparator {
	return func(a, b interface{}) int {
		x := a.(PriorityQueueItem[NodeType])
		y := b.(PriorityQueueItem[NodeType])
		switch {
		case x.Key < y.Key:
			return -1
		case x.Key > y.Key:
			return 1
		case x.Sequence < y.Sequence:
			return -1
		case x.Sequence > y.Sequence:
			return 1
		}
		return 0
	}
}

// Push queues node with the given key and a fresh sequence number.
func (queue *PriorityQueue[NodeType]) Push(node NodeType, key int) PriorityQueueItem[NodeType] {
	item := PriorityQueueItem[NodeType]{Node: node, Key: key, Sequence: queue.sequence}
	queue.sequence++
	queue.heap.Push(item)
	return item
}

// Pop removes the lowest item. ok is false when the queue is empty.
func (queue *PriorityQueue[NodeType]) Pop() (item PriorityQueueItem[NodeType], ok bool) {
	value, ok := queue.heap.Pop()
	if !ok {
		return item, false
	}
	return value.(PriorityQueueItem[NodeType]), true
}

func (queue *PriorityQueue[NodeType]) Len() int { return queue.heap.Size() }
