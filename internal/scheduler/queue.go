package scheduler

import "time"

// readyItem is a task whose dependencies are all scheduled.
type readyItem struct {
	// index is the task's position in the request.
	index int
	due   time.Time
	hours float64
}

// readyQueue is a min-heap over ready tasks implementing container/heap.
// The head is the earliest due task; ties go to fewer hours, then to the
// task listed first in the request.
type readyQueue []readyItem

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if c := a.due.Compare(b.due); c != 0 {
		return c < 0
	}
	if a.hours != b.hours {
		return a.hours < b.hours
	}
	return a.index < b.index
}

func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *readyQueue) Push(x any) {
	*q = append(*q, x.(readyItem))
}

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
