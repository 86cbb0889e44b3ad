package chat

import (
	"sync"
	"time"
)

// Scheduler runs delayed tasks grouped by key. Tasks under a key can be
// cancelled together; a cancelled task never runs.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[string]map[uint64]*time.Timer
	next   uint64
	closed bool
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]map[uint64]*time.Timer)}
}

// Schedule runs fn after delay. It returns false once the scheduler is
// closed.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	s.next++
	id := s.next
	if s.tasks[key] == nil {
		s.tasks[key] = make(map[uint64]*time.Timer)
	}
	s.wg.Add(1)
	s.tasks[key][id] = time.AfterFunc(delay, func() { s.fire(key, id, fn) })
	return true
}

func (s *Scheduler) fire(key string, id uint64, fn func()) {
	defer s.wg.Done()

	s.mu.Lock()
	_, live := s.tasks[key][id]
	if live {
		s.remove(key, id)
	}
	s.mu.Unlock()

	if live {
		fn()
	}
}

// remove expects s.mu held.
func (s *Scheduler) remove(key string, id uint64) {
	delete(s.tasks[key], id)
	if len(s.tasks[key]) == 0 {
		delete(s.tasks, key)
	}
}

// Cancel drops every pending task under key and returns how many were
// dropped.
func (s *Scheduler) Cancel(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(key)
}

func (s *Scheduler) cancelLocked(key string) int {
	n := 0
	for id, t := range s.tasks[key] {
		if t.Stop() {
			// fire will never run for this task
			s.wg.Done()
		}
		s.remove(key, id)
		n++
	}
	return n
}

func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.tasks {
		n += s.cancelLocked(key)
	}
	return n
}

// Pending counts tasks under key that have not started yet.
func (s *Scheduler) Pending(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks[key])
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.tasks {
		n += len(m)
	}
	return n
}

// Wait blocks until every scheduled task has run or been cancelled.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Close cancels pending tasks, waits for running ones and rejects new
// ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.CancelAll()
	s.wg.Wait()
}
