package astar

import "container/heap"

// item is a frontier entry for one cell.
type item struct {
	idx      int    // flat cell index
	estimate uint64 // scaled cost + scaled heuristic
	index    int    // position in the heap, -1 once popped
}

// priorityQueue implements heap.Interface ordered by estimate, then cell index.
type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].estimate != pq[j].estimate {
		return pq[i].estimate < pq[j].estimate
	}
	return pq[i].idx < pq[j].idx
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

// frontier tracks at most one queued item per cell.
type frontier struct {
	pq    priorityQueue
	items []*item
}

func newFrontier(area int) *frontier {
	f := &frontier{items: make([]*item, area)}
	heap.Init(&f.pq)
	return f
}

func (f *frontier) Len() int { return f.pq.Len() }

// upsert queues idx or lowers its estimate in place.
func (f *frontier) upsert(idx int, estimate uint64) {
	if it := f.items[idx]; it != nil && it.index >= 0 {
		it.estimate = estimate
		heap.Fix(&f.pq, it.index)
		return
	}
	it := &item{idx: idx, estimate: estimate}
	f.items[idx] = it
	heap.Push(&f.pq, it)
}

// popBatch removes every entry sharing the minimal estimate and returns their
// cell indices. Less breaks ties by index, so the batch comes out ascending.
func (f *frontier) popBatch(dst []int) []int {
	dst = dst[:0]
	if f.pq.Len() == 0 {
		return dst
	}
	lowest := f.pq[0].estimate
	for f.pq.Len() > 0 && f.pq[0].estimate == lowest {
		it := heap.Pop(&f.pq).(*item)
		dst = append(dst, it.idx)
	}
	return dst
}
