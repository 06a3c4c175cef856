package timer

import (
	"testing"

	"focusflow/internal/model"
)

func testSettings() model.Settings {
	return model.Settings{
		WorkDuration:       1,
		ShortBreakDuration: 1,
		LongBreakDuration:  2,
		PomodorosPerSet:    4,
	}
}

// runToExpiry starts the engine and ticks until the current session expires.
func runToExpiry(t *testing.T, e *Engine) Event {
	t.Helper()
	e.Start()
	for i := 0; i < 10_000; i++ {
		if ev, done := e.Tick(); done {
			return ev
		}
	}
	t.Fatal("session never expired")
	return Event{}
}

// ============================================================
// Construction and running state
// ============================================================

func TestNewStartsPausedAtFullWorkSession(t *testing.T) {
	e := New(testSettings())

	if e.Running() {
		t.Fatal("new engine must be paused")
	}
	if e.Session() != Work {
		t.Fatalf("expected Work, got %v", e.Session())
	}
	if e.Remaining() != 60 {
		t.Fatalf("expected 60s remaining, got %d", e.Remaining())
	}
}

func TestNewClampsInvalidSettings(t *testing.T) {
	e := New(model.Settings{WorkDuration: -5, ShortBreakDuration: 0, LongBreakDuration: 0, PomodorosPerSet: 0})

	if e.Remaining() != 60 {
		t.Fatalf("expected floored 1-minute work session, got %ds", e.Remaining())
	}
	if e.Settings().PomodorosPerSet != 1 {
		t.Fatalf("expected floored set size 1, got %d", e.Settings().PomodorosPerSet)
	}
}

func TestTickWhilePausedDoesNothing(t *testing.T) {
	e := New(testSettings())

	before := e.Remaining()
	if _, done := e.Tick(); done {
		t.Fatal("paused tick must not expire anything")
	}
	if e.Remaining() != before {
		t.Fatal("paused tick must not advance the countdown")
	}
}

func TestToggleFlipsRunning(t *testing.T) {
	e := New(testSettings())

	e.Toggle()
	if !e.Running() {
		t.Fatal("expected running after toggle")
	}
	e.Toggle()
	if e.Running() {
		t.Fatal("expected paused after second toggle")
	}
}

// ============================================================
// Session cycle
// ============================================================

func TestWorkExpiryStopsAndArmsShortBreak(t *testing.T) {
	e := New(testSettings())

	ev := runToExpiry(t, e)
	if ev.Session != Work {
		t.Fatalf("expected Work event, got %v", ev.Session)
	}
	if e.Running() {
		t.Fatal("engine must stop at session boundary")
	}
	if e.Session() != ShortBreak {
		t.Fatalf("expected ShortBreak, got %v", e.Session())
	}
	if e.CompletedInSet() != 1 {
		t.Fatalf("expected 1 in set, got %d", e.CompletedInSet())
	}
}

func TestFullSetEndsInLongBreak(t *testing.T) {
	e := New(testSettings())

	// Work, Short, Work, Short, Work, Short, Work: the fourth work session
	// earns the long break.
	for i := 0; i < 3; i++ {
		if ev := runToExpiry(t, e); ev.Session != Work {
			t.Fatalf("cycle %d: expected Work event, got %v", i, ev.Session)
		}
		if e.Session() != ShortBreak {
			t.Fatalf("cycle %d: expected ShortBreak, got %v", i, e.Session())
		}
		if ev := runToExpiry(t, e); ev.Session != ShortBreak {
			t.Fatalf("cycle %d: expected ShortBreak event, got %v", i, ev.Session)
		}
		if e.Session() != Work {
			t.Fatalf("cycle %d: expected Work, got %v", i, e.Session())
		}
	}

	runToExpiry(t, e)
	if e.Session() != LongBreak {
		t.Fatalf("expected LongBreak after full set, got %v", e.Session())
	}
	if e.CompletedInSet() != 4 {
		t.Fatalf("expected 4 in set, got %d", e.CompletedInSet())
	}
	if e.Remaining() != 120 {
		t.Fatalf("expected long break duration, got %ds", e.Remaining())
	}
}

func TestLongBreakExpiryKeepsSetCounter(t *testing.T) {
	e := New(testSettings())

	for i := 0; i < 4; i++ {
		runToExpiry(t, e) // work
		if i < 3 {
			runToExpiry(t, e) // short break
		}
	}
	if e.Session() != LongBreak {
		t.Fatalf("expected LongBreak, got %v", e.Session())
	}

	ev := runToExpiry(t, e)
	if ev.Session != LongBreak {
		t.Fatalf("expected LongBreak event, got %v", ev.Session)
	}
	if e.Session() != Work {
		t.Fatalf("expected Work after long break, got %v", e.Session())
	}
	// Only Reset clears the counter; the next work expiry lands on 5.
	if e.CompletedInSet() != 4 {
		t.Fatalf("long break completion must not clear the set counter, got %d", e.CompletedInSet())
	}
}

func TestEighthWorkSessionAlsoEarnsLongBreak(t *testing.T) {
	e := New(testSettings())

	for set := 0; set < 2; set++ {
		for i := 0; i < 4; i++ {
			runToExpiry(t, e) // work
			if i < 3 {
				runToExpiry(t, e) // short break
			}
		}
		if e.Session() != LongBreak {
			t.Fatalf("set %d: expected LongBreak, got %v", set, e.Session())
		}
		runToExpiry(t, e) // long break
	}
	if e.CompletedInSet() != 8 {
		t.Fatalf("expected 8 completions, got %d", e.CompletedInSet())
	}
}

// ============================================================
// Skip and reset
// ============================================================

func TestSkipAwardsNoCredit(t *testing.T) {
	e := New(testSettings())
	e.Start()

	e.Skip()
	if e.Session() != ShortBreak {
		t.Fatalf("expected ShortBreak after skipping work, got %v", e.Session())
	}
	if e.CompletedInSet() != 0 {
		t.Fatal("skip must not award set credit")
	}
	if e.Running() {
		t.Fatal("skip must stop the countdown")
	}
}

func TestSkipFromBreaksReturnsToWork(t *testing.T) {
	e := New(testSettings())

	e.Skip() // work -> short break
	e.Skip() // short break -> work
	if e.Session() != Work {
		t.Fatalf("expected Work, got %v", e.Session())
	}
	if e.Remaining() != 60 {
		t.Fatalf("expected full work session, got %ds", e.Remaining())
	}
}

func TestSkippedWorkNeverReachesLongBreak(t *testing.T) {
	e := New(testSettings())

	// Any number of skipped work sessions leaves the set counter at zero,
	// so a later natural expiry still lands on a short break.
	for i := 0; i < 10; i++ {
		e.Skip() // work -> short break
		e.Skip() // short break -> work
	}
	runToExpiry(t, e)
	if e.Session() != ShortBreak {
		t.Fatalf("expected ShortBreak, got %v", e.Session())
	}
	if e.CompletedInSet() != 1 {
		t.Fatalf("expected 1 completion, got %d", e.CompletedInSet())
	}
}

func TestResetClearsSetAndReturnsToWork(t *testing.T) {
	e := New(testSettings())

	runToExpiry(t, e) // one work session banked
	e.Reset()

	if e.Session() != Work || e.Running() {
		t.Fatalf("expected paused Work session, got %v running=%v", e.Session(), e.Running())
	}
	if e.Remaining() != 60 {
		t.Fatalf("expected full work session, got %ds", e.Remaining())
	}
	if e.CompletedInSet() != 0 {
		t.Fatalf("expected cleared counter, got %d", e.CompletedInSet())
	}
}

// ============================================================
// Settings changes and progress
// ============================================================

func TestApplySettingsPausesAndRecomputes(t *testing.T) {
	e := New(testSettings())
	e.Start()
	e.Tick()

	s := testSettings()
	s.WorkDuration = 3
	e.ApplySettings(s)

	if e.Running() {
		t.Fatal("settings change must pause the countdown")
	}
	if e.Remaining() != 180 {
		t.Fatalf("expected recomputed 180s, got %d", e.Remaining())
	}
	if e.Session() != Work {
		t.Fatalf("session must not change, got %v", e.Session())
	}
}

func TestApplySettingsKeepsSetCounter(t *testing.T) {
	e := New(testSettings())
	runToExpiry(t, e)

	e.ApplySettings(testSettings())
	if e.CompletedInSet() != 1 {
		t.Fatalf("settings change must not clear the set counter, got %d", e.CompletedInSet())
	}
}

func TestProgressStaysInRange(t *testing.T) {
	e := New(testSettings())
	if p := e.Progress(); p != 0 {
		t.Fatalf("expected 0 progress at full session, got %f", p)
	}

	e.Start()
	for i := 0; i < 59; i++ {
		e.Tick()
		if p := e.Progress(); p < 0 || p > 1 {
			t.Fatalf("progress out of range: %f", p)
		}
	}
	if p := e.Progress(); p < 0.98 {
		t.Fatalf("expected near-complete progress, got %f", p)
	}
}
