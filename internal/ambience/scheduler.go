package ambience

import (
	"sync"
	"time"
)

// Token identifies one outstanding scheduled task. Zero is never issued.
type Token uint64

type task struct {
	timer Timer
	fn    func()

	// Repeating-step state; stepFn != nil marks a repeating task.
	stepFn   func(step int)
	interval time.Duration
	step     int
	steps    int
}

// Scheduler issues one-shot delayed callbacks with randomized delays and
// fixed-cadence repeating steps. Every outstanding task lives in a registry
// keyed by token so cancellation can invalidate all of them in one pass.
//
// All callbacks run while holding the engine mutex, so they are serialized
// with each other and with Start/Stop. A timer that fired but lost the race
// against a cancellation blocks on the mutex, then finds its token gone and
// returns without running the callback body.
type Scheduler struct {
	mu    *sync.Mutex
	clock Clock
	rng   *Rand
	next  Token
	tasks map[Token]*task
}

func NewScheduler(mu *sync.Mutex, clock Clock, rng *Rand) *Scheduler {
	return &Scheduler{
		mu:    mu,
		clock: clock,
		rng:   rng,
		tasks: make(map[Token]*task),
	}
}

// Schedule arms a one-shot callback after a uniform random delay in
// [min, max). The callback runs holding the engine mutex.
func (s *Scheduler) Schedule(min, max time.Duration, fn func()) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(min, max, fn)
}

// CancelAll cancels every outstanding task. No registered callback body
// executes after this returns.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAllLocked()
}

// scheduleLocked is the re-arm entry point used from inside callbacks,
// which already hold the engine mutex.
func (s *Scheduler) scheduleLocked(min, max time.Duration, fn func()) Token {
	if min < 0 {
		min = 0
	}
	delay := s.rng.DurationRange(min, max)
	tok := s.issueToken()
	t := &task{fn: fn}
	t.timer = s.clock.AfterFunc(delay, func() { s.fire(tok) })
	s.tasks[tok] = t
	return tok
}

// repeatingStepLocked arms a fixed-cadence task that fires fn(1..steps),
// re-arming itself under the same token after every step until the last.
func (s *Scheduler) repeatingStepLocked(interval time.Duration, fn func(step int), steps int) Token {
	if steps <= 0 {
		return 0
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	tok := s.issueToken()
	t := &task{stepFn: fn, interval: interval, steps: steps}
	t.timer = s.clock.AfterFunc(interval, func() { s.fire(tok) })
	s.tasks[tok] = t
	return tok
}

func (s *Scheduler) cancelLocked(tok Token) {
	t, ok := s.tasks[tok]
	if !ok {
		return
	}
	t.timer.Stop()
	delete(s.tasks, tok)
}

func (s *Scheduler) cancelAllLocked() {
	for tok, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, tok)
	}
}

func (s *Scheduler) pendingLocked() int { return len(s.tasks) }

func (s *Scheduler) issueToken() Token {
	s.next++
	return s.next
}

func (s *Scheduler) fire(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Cancelled (or superseded) while this timer was in flight.
	t, ok := s.tasks[tok]
	if !ok {
		return
	}

	if t.stepFn == nil {
		delete(s.tasks, tok)
		t.fn()
		return
	}

	t.step++
	if t.step >= t.steps {
		delete(s.tasks, tok)
	} else {
		t.timer = s.clock.AfterFunc(t.interval, func() { s.fire(tok) })
	}
	t.stepFn(t.step)
}
