package sched

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// nodeKey is used as a key in the red-black tree.
type nodeKey struct {
	vruntime float64
	id       TaskID
}

// compareKeys orders keys by vruntime, then by ascending task ID so equal vruntimes
// always break the same way.
func compareKeys(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	if c := utils.Float64Comparator(ka.vruntime, kb.vruntime); c != 0 {
		return c
	}
	return utils.UInt64Comparator(uint64(ka.id), uint64(kb.id))
}

// RunQueue is the ordered index of READY tasks, ranked by (vruntime, id).
//
// The tree owns its nodes; tasks are referenced, not owned. The locator map
// remembers the key each task was inserted under so Remove does not need a
// scan, and so a task whose Vruntime changed after insertion can still be
// found.
type RunQueue struct {
	rbt     *redblacktree.Tree
	locator map[TaskID]nodeKey
}

// NewRunQueue creates an empty run queue.
func NewRunQueue() *RunQueue {
	return &RunQueue{
		rbt:     redblacktree.NewWith(compareKeys),
		locator: make(map[TaskID]nodeKey),
	}
}

// Insert adds t keyed by its current (Vruntime, ID).
func (q *RunQueue) Insert(t *Task) error {
	if _, dup := q.locator[t.ID]; dup {
		return fmt.Errorf("insert task %d: %w", t.ID, ErrDuplicateTask)
	}
	k := t.key()
	q.rbt.Put(k, t)
	q.locator[t.ID] = k
	return nil
}

// PeekMin returns the task with the smallest key, or nil if the queue is empty.
func (q *RunQueue) PeekMin() *Task {
	node := q.rbt.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*Task)
}

// PopMin removes and returns the task with the smallest key.
func (q *RunQueue) PopMin() *Task {
	node := q.rbt.Left()
	if node == nil {
		return nil
	}
	t := node.Value.(*Task)
	q.rbt.Remove(node.Key)
	delete(q.locator, t.ID)
	return t
}

// Remove deletes the entry for id. A miss is reported as ErrTaskNotFound.
func (q *RunQueue) Remove(id TaskID) error {
	k, ok := q.locator[id]
	if !ok {
		return fmt.Errorf("remove task %d: %w", id, ErrTaskNotFound)
	}
	q.rbt.Remove(k)
	delete(q.locator, id)
	return nil
}

// Contains reports whether id currently has an entry.
func (q *RunQueue) Contains(id TaskID) bool {
	_, ok := q.locator[id]
	return ok
}

func (q *RunQueue) IsEmpty() bool { return q.rbt.Empty() }

func (q *RunQueue) Len() int { return q.rbt.Size() }

// Tasks returns the queued tasks in ascending key order.
func (q *RunQueue) Tasks() []*Task {
	out := make([]*Task, 0, q.rbt.Size())
	it := q.rbt.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Task))
	}
	return out
}

// Reset drops every entry.
func (q *RunQueue) Reset() {
	q.rbt.Clear()
	clear(q.locator)
}

// check verifies that the tree and the locator agree. It is cheap enough to
// call from tests after every mutation.
func (q *RunQueue) check() error {
	if q.rbt.Size() != len(q.locator) {
		return fmt.Errorf("tree holds %d entries, locator %d: %w", q.rbt.Size(), len(q.locator), ErrInvariant)
	}
	var prev *nodeKey
	it := q.rbt.Iterator()
	for it.Next() {
		k := it.Key().(nodeKey)
		t := it.Value().(*Task)
		if t.ID != k.id {
			return fmt.Errorf("key for task %d holds task %d: %w", k.id, t.ID, ErrInvariant)
		}
		if lk, ok := q.locator[k.id]; !ok || lk != k {
			return fmt.Errorf("locator out of sync for task %d: %w", k.id, ErrInvariant)
		}
		if prev != nil && compareKeys(*prev, k) >= 0 {
			return fmt.Errorf("keys out of order at task %d: %w", k.id, ErrInvariant)
		}
		prev = &k
	}
	return nil
}
