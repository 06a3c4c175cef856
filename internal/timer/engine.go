package timer

import "focusflow/internal/model"

// Session identifies which interval the engine is counting down.
type Session int

const (
	Work Session = iota
	ShortBreak
	LongBreak
)

func (s Session) String() string {
	switch s {
	case Work:
		return "work"
	case ShortBreak:
		return "short break"
	case LongBreak:
		return "long break"
	}
	return "unknown"
}

// IsBreak reports whether s is a recovery interval.
func (s Session) IsBreak() bool {
	return s != Work
}

// Event is emitted when a session expires naturally. Skipped sessions never
// produce one.
type Event struct {
	Session Session
}

// Engine is the work/break interval state machine. It owns only transient
// countdown state; it is driven by a single cooperative tick source, so its
// methods must not be called concurrently.
type Engine struct {
	settings model.Settings

	session        Session
	remaining      int // seconds
	running        bool
	completedInSet int
}

// New builds an engine at a full Work session. Settings are floored at their
// minimum valid values.
func New(settings model.Settings) *Engine {
	e := &Engine{settings: model.ClampSettings(settings)}
	e.session = Work
	e.remaining = e.durationFor(Work)
	return e
}

// Start begins (or resumes) the countdown. Starting a running engine is a
// no-op.
func (e *Engine) Start() {
	e.running = true
}

// Pause suspends the countdown. The engine tolerates staying paused
// indefinitely; a paused timer is a valid state, not a failure.
func (e *Engine) Pause() {
	e.running = false
}

// Toggle flips between running and paused.
func (e *Engine) Toggle() {
	e.running = !e.running
}

// Tick advances the countdown by one second. It is the single mutation point
// while the engine runs. When the countdown reaches zero the session expires:
// the engine stops, emits the completed session, and arms the next one.
func (e *Engine) Tick() (Event, bool) {
	if !e.running || e.remaining <= 0 {
		return Event{}, false
	}
	e.remaining--
	if e.remaining > 0 {
		return Event{}, false
	}
	return e.expire(), true
}

// expire handles a natural session end: a finished Work session earns set
// credit and decides short vs long break; a finished break returns to Work.
func (e *Engine) expire() Event {
	e.running = false
	ev := Event{Session: e.session}

	if e.session == Work {
		e.completedInSet++
		if e.completedInSet%e.settings.PomodorosPerSet == 0 {
			e.session = LongBreak
		} else {
			e.session = ShortBreak
		}
	} else {
		e.session = Work
	}
	e.remaining = e.durationFor(e.session)
	return ev
}

// Skip abandons the current session without awarding work credit: no event,
// no set-counter change. Work skips to a short break; either break skips
// back to work.
func (e *Engine) Skip() {
	e.running = false
	if e.session == Work {
		e.session = ShortBreak
	} else {
		e.session = Work
	}
	e.remaining = e.durationFor(e.session)
}

// Reset stops the timer, returns to a full Work session, and starts a fresh
// set. This is the only operation that clears the in-set counter; a long
// break completing naturally does not.
func (e *Engine) Reset() {
	e.running = false
	e.session = Work
	e.remaining = e.durationFor(Work)
	e.completedInSet = 0
}

// ApplySettings replaces the configuration and recomputes the countdown for
// the current session from its new duration. Changing settings always
// pauses, so an in-flight countdown is never silently reinterpreted.
func (e *Engine) ApplySettings(settings model.Settings) {
	e.settings = model.ClampSettings(settings)
	e.running = false
	e.remaining = e.durationFor(e.session)
}

// Progress reports the fraction of the current session already elapsed,
// clamped to [0,1]. A zero-length session reports 0.
func (e *Engine) Progress() float64 {
	total := e.durationFor(e.session)
	if total <= 0 {
		return 0
	}
	p := float64(total-e.remaining) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (e *Engine) durationFor(s Session) int {
	switch s {
	case ShortBreak:
		return e.settings.ShortBreakDuration * 60
	case LongBreak:
		return e.settings.LongBreakDuration * 60
	default:
		return e.settings.WorkDuration * 60
	}
}

// Session returns the interval currently being counted down.
func (e *Engine) Session() Session { return e.session }

// Remaining returns the seconds left in the current session.
func (e *Engine) Remaining() int { return e.remaining }

// Running reports whether the countdown is live.
func (e *Engine) Running() bool { return e.running }

// CompletedInSet returns how many work sessions have expired naturally since
// the last Reset.
func (e *Engine) CompletedInSet() int { return e.completedInSet }

// Settings returns the active configuration.
func (e *Engine) Settings() model.Settings { return e.settings }
