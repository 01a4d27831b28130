// Package timer implements the focus countdown. Remaining time is always
// derived from the start instant and the caller's clock, never from a
// decremented counter.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

const (
	PomodoroDuration = 25 * time.Minute
	BreakDuration    = 5 * time.Minute
)

var ErrNotRunning = errors.New("timer is not running")

type State int

const (
	Idle State = iota
	Running
	Expired
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

type Kind string

const (
	Pomodoro Kind = "Pomodoro"
	Break    Kind = "Break"
	Custom   Kind = "Custom"
)

// Timer is a single countdown. It is not safe for concurrent use.
type Timer struct {
	state    State
	kind     Kind
	start    time.Time
	duration time.Duration
	// elapsed is frozen when the timer stops or expires.
	elapsed  time.Duration
	signaled bool
}

func New() *Timer {
	return &Timer{}
}

func (t *Timer) State() State {
	return t.state
}

func (t *Timer) Kind() Kind {
	return t.kind
}

// Start begins a countdown of d at now. Starting a running timer restarts it.
func (t *Timer) Start(kind Kind, d time.Duration, now time.Time) error {
	if d <= 0 {
		return model.Invalid("duration", "must be positive, got %s", d)
	}
	*t = Timer{
		state:    Running,
		kind:     kind,
		start:    now,
		duration: d,
	}
	return nil
}

// Reading is a snapshot of the timer at one instant.
type Reading struct {
	State     State
	Kind      Kind
	Duration  time.Duration
	Elapsed   time.Duration
	Remaining time.Duration
	Progress  float64
	// Completed is true on the one reading where the countdown ran out.
	Completed bool
}

// Tick reads the timer at now. A running timer whose remaining time reaches
// zero moves to Expired, and only that reading reports Completed.
func (t *Timer) Tick(now time.Time) Reading {
	r := Reading{State: t.state, Kind: t.kind, Duration: t.duration}
	switch t.state {
	case Idle:
		return r
	case Stopped:
		r.Elapsed = t.elapsed
	case Expired:
		r.Elapsed = t.elapsed
		// Stop can expire a countdown that ran out between ticks.
		if !t.signaled {
			t.signaled = true
			r.Completed = true
		}
	case Running:
		r.Elapsed = max(0, now.Sub(t.start))
		if r.Elapsed >= t.duration {
			t.state = Expired
			t.elapsed = r.Elapsed
			r.State = Expired
			if !t.signaled {
				t.signaled = true
				r.Completed = true
			}
		}
	}
	if t.state == Expired {
		r.Remaining = 0
	} else {
		r.Remaining = max(0, t.duration-r.Elapsed)
	}
	r.Progress = min(1, float64(r.Elapsed)/float64(t.duration))
	return r
}

// Stop halts a running timer and returns how long it ran. A countdown that
// already ran out is moved to Expired instead, its elapsed time capped at the
// duration, and the next Tick reports it Completed.
func (t *Timer) Stop(now time.Time) (time.Duration, error) {
	if t.state != Running {
		return 0, ErrNotRunning
	}
	elapsed := max(0, now.Sub(t.start))
	if elapsed >= t.duration {
		t.elapsed = t.duration
		t.state = Expired
		return t.elapsed, nil
	}
	t.elapsed = elapsed
	t.state = Stopped
	return t.elapsed, nil
}

// Reset returns the timer to Idle.
func (t *Timer) Reset() {
	*t = Timer{}
}

// Clock renders the remaining time as MM:SS, truncating partial seconds.
// Minutes keep counting past 59.
func (r Reading) Clock() string {
	return FormatClock(r.Remaining)
}

func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
