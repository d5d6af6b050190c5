// ABOUTME: Single-goroutine FIFO write queue between the store and its backend.
// ABOUTME: Writes are applied in enqueue order; failures are logged, never returned.
package store

import (
	"context"
	"sync"

	"github.com/harperreed/fitness/internal/kv"
	"github.com/sirupsen/logrus"
)

const queueDepth = 64

type write struct {
	key    string
	value  []byte
	remove bool
	// done marks a flush barrier; barriers carry no key.
	done chan struct{}
}

type writeQueue struct {
	backend kv.Store
	log     logrus.FieldLogger

	mu      sync.Mutex
	closed  bool
	ch      chan write
	stopped chan struct{}
}

func newWriteQueue(backend kv.Store, log logrus.FieldLogger) *writeQueue {
	q := &writeQueue{
		backend: backend,
		log:     log,
		ch:      make(chan write, queueDepth),
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *writeQueue) run() {
	defer close(q.stopped)
	ctx := context.Background()

	for w := range q.ch {
		if w.done != nil {
			close(w.done)
			continue
		}

		op := "set"
		var err error
		if w.remove {
			op = "delete"
			err = q.backend.Delete(ctx, w.key)
		} else {
			err = q.backend.Set(ctx, w.key, w.value)
		}
		if err != nil {
			q.log.WithError(err).WithFields(logrus.Fields{"key": w.key, "op": op}).Error("persist failed")
		}
	}
}

func (q *writeQueue) set(key string, value []byte) {
	q.enqueue(write{key: key, value: value})
}

func (q *writeQueue) delete(key string) {
	q.enqueue(write{key: key, remove: true})
}

func (q *writeQueue) enqueue(w write) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.log.WithField("key", w.key).Warn("write dropped after close")
		return
	}
	q.ch <- w
}

// flush blocks until every write enqueued before the call has been applied.
func (q *writeQueue) flush() {
	done := make(chan struct{})

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.stopped
		return
	}
	q.ch <- write{done: done}
	q.mu.Unlock()

	<-done
}

// close drains pending writes and stops the worker. Safe to call twice.
func (q *writeQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()
	<-q.stopped
}
