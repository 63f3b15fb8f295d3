package core

import (
	"errors"
	"slices"
	"sync"
)

// Scheduler owns the process-wide queue of instances marked for rerender.
// It batches marks with set semantics and drains one batch per flush, in
// an order that processes ancestors before descendants. It starts empty
// and is empty again between flushes.
//
// The queue is the runtime's only shared mutable state; the mutex exists
// so MarkForRerender from an arbitrary asynchronous callback is always
// safe; it only enqueues. Everything else runs on one logical thread.
type Scheduler struct {
	mu         sync.Mutex
	pending    []*Instance
	pendingSet map[*Instance]bool

	// OnNeedsFlush is called when a mark transitions the queue from
	// empty to non-empty, and again after a flush that left deferred
	// work behind. This is the hook platforms use to schedule the next
	// flush; tests typically leave it nil and pump manually.
	OnNeedsFlush func()
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pendingSet: make(map[*Instance]bool)}
}

// DefaultScheduler is the process-wide scheduler used when Render is not
// given an explicit one. It is initialized empty at process start.
var DefaultScheduler = NewScheduler()

// Schedule inserts an instance into the current batch. Repeated marks for
// the same instance within one batch collapse.
func (s *Scheduler) Schedule(inst *Instance) {
	s.mu.Lock()
	if s.pendingSet[inst] {
		s.mu.Unlock()
		return
	}
	s.pendingSet[inst] = true
	s.pending = append(s.pending, inst)
	first := len(s.pending) == 1
	cb := s.OnNeedsFlush
	s.mu.Unlock()

	if first && cb != nil {
		cb()
	}
}

// Pending returns the number of instances waiting in the current batch.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush drains exactly one batch. Instances rerender shallowest first, so
// a parent update that unmounts a still-pending descendant skips that
// descendant instead of wastefully rendering it. Marks arriving during
// the flush (an after-render callback calling MarkForRerender, say) go
// to the next batch, never this one; that bounds each flush to a finite
// amount of work. When deferred work remains, OnNeedsFlush fires again.
//
// Errors from individual rerenders do not stop the batch; they are
// joined and returned to the flush initiator.
func (s *Scheduler) Flush() error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	clear(s.pendingSet)
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	slices.SortStableFunc(batch, func(a, b *Instance) int {
		return a.depth - b.depth
	})

	var errs []error
	for _, inst := range batch {
		if !inst.mounted || !inst.dirty {
			continue
		}
		if err := inst.rebuild(); err != nil {
			errs = append(errs, err)
		}
	}

	s.mu.Lock()
	more := len(s.pending) > 0
	cb := s.OnNeedsFlush
	s.mu.Unlock()
	if more && cb != nil {
		cb()
	}

	return errors.Join(errs...)
}

// FlushAll flushes batch after batch until the queue settles. Each batch
// is still a distinct flush with the deferral rule intact.
func (s *Scheduler) FlushAll() error {
	var errs []error
	for s.Pending() > 0 {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
