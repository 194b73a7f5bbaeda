package sched

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
)

// arrivalQueue holds tasks that were added but not yet admitted, earliest
// arrival first and ties broken by id.
type arrivalQueue struct {
	pq *priorityqueue.Queue
}

func byArrival(a, b any) int {
	ta, tb := a.(*Task), b.(*Task)
	if c := utils.Int64Comparator(ta.Arrival, tb.Arrival); c != 0 {
		return c
	}
	return utils.UInt64Comparator(uint64(ta.ID), uint64(tb.ID))
}

func newArrivalQueue() *arrivalQueue {
	return &arrivalQueue{pq: priorityqueue.NewWith(byArrival)}
}

func (q *arrivalQueue) push(t *Task) { q.pq.Enqueue(t) }

// popDue returns the next task with Arrival <= now, or nil.
func (q *arrivalQueue) popDue(now int64) *Task {
	v, ok := q.pq.Peek()
	if !ok || v.(*Task).Arrival > now {
		return nil
	}
	q.pq.Dequeue()
	return v.(*Task)
}

// next returns the earliest pending arrival without removing it.
func (q *arrivalQueue) next() (*Task, bool) {
	v, ok := q.pq.Peek()
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

func (q *arrivalQueue) len() int { return q.pq.Size() }

func (q *arrivalQueue) reset() { q.pq.Clear() }
