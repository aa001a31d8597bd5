package ambience

import "time"

// DefaultFadeSteps is how many discrete volume assignments a fade makes.
const DefaultFadeSteps = 60

type envelope struct {
	token      Token
	onComplete func()
}

// EnvelopeEngine drives stepped linear volume ramps on channels. At most one
// envelope is active per channel: a new fade on the same channel supersedes
// the old one, whose completion callback then never fires.
//
// Methods run under the engine mutex (fades are requested from Start/Stop or
// from scheduled callbacks, which already hold it).
type EnvelopeEngine struct {
	sched  *Scheduler
	reg    *ChannelRegistry
	steps  int
	active map[*Channel]*envelope
}

func NewEnvelopeEngine(sched *Scheduler, reg *ChannelRegistry, steps int) *EnvelopeEngine {
	if steps <= 0 {
		steps = DefaultFadeSteps
	}
	return &EnvelopeEngine{
		sched:  sched,
		reg:    reg,
		steps:  steps,
		active: make(map[*Channel]*envelope),
	}
}

// fadeLocked ramps c's volume from startVol to endVol over duration, then
// invokes onComplete exactly once. Volume at step i is the linear
// interpolation clamped to [0,1]; the final step assigns endVol itself so
// accumulated float error never leaks into the target.
//
// A non-positive duration degrades to an immediate assignment.
func (e *EnvelopeEngine) fadeLocked(c *Channel, startVol, endVol float64, duration time.Duration, onComplete func()) {
	if c == nil {
		return
	}
	if prior, ok := e.active[c]; ok {
		e.sched.cancelLocked(prior.token)
		delete(e.active, c)
	}

	if duration <= 0 {
		e.reg.SetVolume(c, endVol)
		if onComplete != nil {
			onComplete()
		}
		return
	}

	e.reg.SetVolume(c, startVol)

	env := &envelope{onComplete: onComplete}
	steps := e.steps
	delta := (endVol - startVol) / float64(steps)
	env.token = e.sched.repeatingStepLocked(duration/time.Duration(steps), func(step int) {
		if step < steps {
			e.reg.SetVolume(c, startVol+delta*float64(step))
			return
		}
		e.reg.SetVolume(c, endVol)
		delete(e.active, c)
		if env.onComplete != nil {
			env.onComplete()
		}
	}, steps)
	e.active[c] = env
}

// resetLocked abandons every in-flight envelope. The underlying steps are
// cancelled by the scheduler; completion callbacks never fire.
func (e *EnvelopeEngine) resetLocked() {
	for c := range e.active {
		delete(e.active, c)
	}
}

func (e *EnvelopeEngine) activeLocked(c *Channel) bool {
	_, ok := e.active[c]
	return ok
}
