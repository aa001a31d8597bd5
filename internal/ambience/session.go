package ambience

import (
	"sync"
	"time"
)

// Channel ids used by a session.
const (
	ChannelLoop  = "loop"
	ChannelCue   = "cue"
	ChannelSwell = "swell"
)

// Sources supplies the playback handle for each ambient channel. How the
// audio bytes behind a handle are produced is not the session's business.
type Sources struct {
	Loop  Player // continuous bed, loops until paused
	Cue   Player // randomized one-shot
	Swell Player // slow volume swells, held at silence between cycles
}

// Session composes the scheduler, envelope engine, and channel registry into
// the ambient-audio lifecycle: a continuous loop channel, a self-rescheduling
// one-shot cue chain, and a self-rescheduling swell chain.
//
// Init/Start/Stop are all idempotent. Stop cancels every pending event and
// abandons in-flight envelopes; no scheduled callback body runs afterwards.
type Session struct {
	mu sync.Mutex

	cfg   Config
	rng   *Rand
	src   Sources
	sched *Scheduler
	reg   *ChannelRegistry
	envs  *EnvelopeEngine

	loop  *Channel
	cue   *Channel
	swell *Channel

	initialized bool
	active      bool
}

func NewSession(cfg Config, src Sources) *Session {
	return newSession(cfg, src, realClock{})
}

func newSession(cfg Config, src Sources, clock Clock) *Session {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &Session{
		cfg: cfg,
		rng: NewRand(seed),
		src: src,
		reg: NewChannelRegistry(),
	}
	s.sched = NewScheduler(&s.mu, clock, s.rng)
	s.envs = NewEnvelopeEngine(s.sched, s.reg, cfg.FadeSteps)
	return s
}

// Init allocates the channels. It does not start playback. Calling it again
// is a no-op.
func (s *Session) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.reg.SetMaster(s.cfg.MasterVolume)
	s.loop = s.reg.Create(ChannelLoop, s.src.Loop, true, s.cfg.LoopVolume)
	s.cue = s.reg.Create(ChannelCue, s.src.Cue, false, s.cfg.CueVolume)
	s.swell = s.reg.Create(ChannelSwell, s.src.Swell, true, 0)
	s.initialized = true
}

// Start begins the ambient cycle: the loop channel plays immediately and the
// cue and swell chains are armed once each. Calling Start while already
// active is a no-op, so chains are never double-armed.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized || s.active {
		return
	}
	s.active = true
	s.reg.Play(s.loop)
	s.armCueLocked()
	s.armSwellLocked()
}

// Stop pauses every channel and cancels every pending event and in-flight
// envelope. Once it returns, no scheduled callback fires, however long the
// clock advances. Calling Stop while idle is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	s.sched.cancelAllLocked()
	s.envs.resetLocked()
	s.reg.PauseAll()
}

// Active reports whether the session is between Start and Stop.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetMasterVolume rescales all channels; input is clamped to [0,1].
func (s *Session) SetMasterVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.SetMaster(v)
}

// Close stops the session and releases every playback handle.
func (s *Session) Close() {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.Close()
	s.loop, s.cue, s.swell = nil, nil, nil
	s.initialized = false
}

// Cue chain: fire one randomized one-shot, then re-arm. The loop has no
// termination other than Stop, which cancels the pending event; the active
// check below covers a fire racing that cancellation.

func (s *Session) armCueLocked() {
	s.sched.scheduleLocked(s.cfg.CueDelayMin, s.cfg.CueDelayMax, s.fireCueLocked)
}

func (s *Session) fireCueLocked() {
	if !s.active {
		return
	}
	s.reg.SeekToStart(s.cue)
	s.reg.Play(s.cue)
	s.armCueLocked()
}

// Swell chain: fade the swell channel up from silence to a random target
// over a random duration, hold, fade back down, pause, re-arm. Each phase is
// a named step below; Stop ends the cycle between any two of them because
// every step is carried by a cancellable scheduled task.

func (s *Session) armSwellLocked() {
	s.sched.scheduleLocked(s.cfg.SwellDelayMin, s.cfg.SwellDelayMax, s.fireSwellLocked)
}

func (s *Session) fireSwellLocked() {
	if !s.active {
		return
	}
	target := s.rng.RangeF(s.cfg.SwellVolumeMin, s.cfg.SwellVolumeMax)
	rise := s.rng.DurationRange(s.cfg.SwellFadeMin, s.cfg.SwellFadeMax)
	fall := s.rng.DurationRange(s.cfg.SwellFadeMin, s.cfg.SwellFadeMax)

	s.reg.SetVolume(s.swell, 0)
	s.reg.SeekToStart(s.swell)
	s.reg.Play(s.swell)
	s.envs.fadeLocked(s.swell, 0, target, rise, func() { s.swellRiseDoneLocked(target, fall) })
}

func (s *Session) swellRiseDoneLocked(target float64, fall time.Duration) {
	s.sched.scheduleLocked(s.cfg.SwellHoldMin, s.cfg.SwellHoldMax, func() { s.swellHoldDoneLocked(target, fall) })
}

func (s *Session) swellHoldDoneLocked(target float64, fall time.Duration) {
	s.envs.fadeLocked(s.swell, target, 0, fall, s.swellFallDoneLocked)
}

func (s *Session) swellFallDoneLocked() {
	s.reg.Pause(s.swell)
	s.armSwellLocked()
}
