// SPDX-License-Identifier: EPL-2.0

package audcue

import "sync"

// Queue is the FIFO of pending commands. Enqueue is safe from any number of
// goroutines, including while a drain is in progress.
type Queue struct {
	mtx     sync.Mutex
	entries []Entry
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends cmd for ch to the tail.
func (q *Queue) Enqueue(cmd Command, ch Channel) {
	q.Push(Entry{Command: cmd, Channel: ch})
}

// Push appends an entry to the tail. Re-queued entries go through Push too,
// so they land behind anything enqueued before them.
func (q *Queue) Push(e Entry) {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.entries = append(q.entries, e)
}

// Drain removes and returns every entry present at call time in FIFO order.
func (q *Queue) Drain() []Entry {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if len(q.entries) == 0 {
		return nil
	}
	out := q.entries
	q.entries = nil
	return out
}

func (q *Queue) Len() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return len(q.entries)
}
