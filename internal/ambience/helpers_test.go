package ambience

import (
	"sync"
	"time"
)

// fakeClock drives scheduled callbacks deterministically. Advance fires due
// timers in due order, synchronously, outside the clock's own lock so fired
// callbacks can arm new timers.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	fc      *fakeClock
	due     time.Duration
	delay   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (fc *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.seq++
	t := &fakeTimer{fc: fc, due: fc.now + d, delay: d, seq: fc.seq, fn: fn}
	fc.timers = append(fc.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.fc.mu.Lock()
	defer t.fc.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (fc *fakeClock) Advance(d time.Duration) {
	fc.mu.Lock()
	target := fc.now + d
	for {
		var next *fakeTimer
		for _, t := range fc.timers {
			if t.stopped || t.due > target {
				continue
			}
			if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			fc.now = target
			fc.mu.Unlock()
			return
		}
		next.stopped = true
		fc.now = next.due
		fc.mu.Unlock()
		next.fn()
		fc.mu.Lock()
	}
}

// armedDelays returns the original delay of every timer ever armed.
func (fc *fakeClock) armedDelays() []time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]time.Duration, 0, len(fc.timers))
	for _, t := range fc.timers {
		out = append(out, t.delay)
	}
	return out
}

// fakePlayer records every playback-primitive call.
type fakePlayer struct {
	playErr error

	playing bool
	volume  float64
	volumes []float64

	plays  int
	pauses int
	seeks  int
	closes int
}

func (p *fakePlayer) Play() error {
	if p.playErr != nil {
		return p.playErr
	}
	p.plays++
	p.playing = true
	return nil
}

func (p *fakePlayer) Pause() error {
	p.pauses++
	p.playing = false
	return nil
}

func (p *fakePlayer) SetVolume(v float64) {
	p.volume = v
	p.volumes = append(p.volumes, v)
}

func (p *fakePlayer) SeekToStart() error {
	p.seeks++
	return nil
}

func (p *fakePlayer) Close() error {
	p.closes++
	return nil
}

type testPlayers struct {
	loop, cue, swell *fakePlayer
}

func newTestSession(seed uint64) (*Session, *fakeClock, testPlayers) {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return newTestSessionWithConfig(cfg)
}

func newTestSessionWithConfig(cfg Config) (*Session, *fakeClock, testPlayers) {
	fc := newFakeClock()
	tp := testPlayers{loop: &fakePlayer{}, cue: &fakePlayer{}, swell: &fakePlayer{}}
	s := newSession(cfg, Sources{Loop: tp.loop, Cue: tp.cue, Swell: tp.swell}, fc)
	return s, fc, tp
}

// pendingEvents counts outstanding scheduled tasks.
func (s *Session) pendingEvents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.pendingLocked()
}
