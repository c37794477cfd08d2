package queue

import (
	"context"
	"sync"

	"github.com/ytget/tg-video-bot/internal/model"
)

// Queue is an ordered list of pending download jobs. Many chat handlers may
// Enqueue concurrently; only the worker calls DequeueNext.
type Queue struct {
	mu     sync.Mutex
	items  []*model.Job
	notify chan struct{}
}

// New creates an empty queue
func New() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
	}
}

// Enqueue appends a job at the tail
func (q *Queue) Enqueue(job *model.Job) {
	q.mu.Lock()
	q.items = append(q.items, job)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// DequeueNext pops the job at the head. The second return value is false when
// the queue is empty.
func (q *Queue) DequeueNext() (*model.Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}

	job := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return job, true
}

// Len returns the number of pending jobs
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Wait blocks until the queue may have an item or ctx is done. It returns
// false only on context cancellation. A true result is a hint, not a
// guarantee; the caller still checks DequeueNext.
func (q *Queue) Wait(ctx context.Context) bool {
	q.mu.Lock()
	pending := len(q.items)
	q.mu.Unlock()

	if pending > 0 {
		return true
	}

	select {
	case <-q.notify:
		return true
	case <-ctx.Done():
		return false
	}
}
