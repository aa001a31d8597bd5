package ambience

import "time"

// Timer is an armed one-shot callback that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// Clock arms timers. The production clock wraps time.AfterFunc; tests
// substitute a manual clock so scheduled callbacks fire deterministically.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool { return rt.t.Stop() }
