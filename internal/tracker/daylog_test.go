package tracker

import (
	"testing"
	"time"

	"focusflow/internal/model"
)

// ============================================================
// Lazy creation and targets
// ============================================================

func TestLogForSynthesizesDefaultWithoutWriting(t *testing.T) {
	tr := newTestTracker(t)

	log := tr.LogFor("2024-01-10")
	if log.PomodorosTarget != model.DefaultPomodorosTarget || log.TasksTarget != model.DefaultTasksTarget {
		t.Fatalf("expected default targets, got %+v", log)
	}
	if len(tr.Logs()) != 0 {
		t.Fatal("LogFor must not materialize the log")
	}
}

func TestEnsureLogMaterializesOnce(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.EnsureLog("2024-01-10"); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetTargets("2024-01-10", 10, 5); err != nil {
		t.Fatal(err)
	}
	if err := tr.EnsureLog("2024-01-10"); err != nil {
		t.Fatal(err)
	}

	log := tr.LogFor("2024-01-10")
	if log.PomodorosTarget != 10 || log.TasksTarget != 5 {
		t.Fatalf("re-ensuring must not reset targets, got %+v", log)
	}
}

func TestSetTargetsPreservesCompletions(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.RecordPomodoroCompleted("2024-01-10"); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetTargets("2024-01-10", 12, 6); err != nil {
		t.Fatal(err)
	}

	log := tr.LogFor("2024-01-10")
	if log.PomodorosCompleted != 1 {
		t.Fatalf("completions must survive a target edit, got %d", log.PomodorosCompleted)
	}
	if log.PomodorosTarget != 12 || log.TasksTarget != 6 {
		t.Fatalf("targets not applied: %+v", log)
	}
}

func TestSetTargetsFloorsAtZero(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SetTargets("2024-01-10", -4, -1); err != nil {
		t.Fatal(err)
	}
	log := tr.LogFor("2024-01-10")
	if log.PomodorosTarget != 0 || log.TasksTarget != 0 {
		t.Fatalf("expected floored targets, got %+v", log)
	}
}

// ============================================================
// Pomodoro counting
// ============================================================

func TestRecordPomodoroCreatesLogLazily(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.RecordPomodoroCompleted("2024-01-10"); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordPomodoroCompleted("2024-01-10"); err != nil {
		t.Fatal(err)
	}

	log, ok := tr.Logs()["2024-01-10"]
	if !ok {
		t.Fatal("log must be materialized by the first completion")
	}
	if log.PomodorosCompleted != 2 {
		t.Fatalf("expected 2 pomodoros, got %d", log.PomodorosCompleted)
	}
	if log.PomodorosTarget != model.DefaultPomodorosTarget {
		t.Fatalf("lazy log must carry default targets, got %d", log.PomodorosTarget)
	}
}

func TestRecordPomodoroKeepsDatesSeparate(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.RecordPomodoroCompleted("2024-01-10"); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordPomodoroCompleted("2024-01-11"); err != nil {
		t.Fatal(err)
	}

	if tr.LogFor("2024-01-10").PomodorosCompleted != 1 || tr.LogFor("2024-01-11").PomodorosCompleted != 1 {
		t.Fatal("each date accumulates independently")
	}
}

func TestRecordWorkSessionCreditsActiveTask(t *testing.T) {
	tr := newTestTracker(t)
	task := addTask(t, tr, "focus", "")

	if err := tr.RecordWorkSessionComplete(); err != nil {
		t.Fatal(err)
	}

	if got := tr.Tasks()[0].CompletedPomodoros; got != 1 {
		t.Fatalf("expected 1 completed pomodoro on %q, got %d", task.Name, got)
	}
	if tr.LogFor(model.Today()).PomodorosCompleted != 1 {
		t.Fatal("today's log must count the session")
	}
}

func TestRecordWorkSessionWithoutActiveTask(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.RecordWorkSessionComplete(); err != nil {
		t.Fatal(err)
	}
	if tr.LogFor(model.Today()).PomodorosCompleted != 1 {
		t.Fatal("the day still counts the session with no active task")
	}
}

// ============================================================
// Task completion counting
// ============================================================

func TestToggleTaskCountsTodaysCompletion(t *testing.T) {
	tr := newTestTracker(t)
	task := addTask(t, tr, "count me", "")

	toggled, err := tr.ToggleTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled.IsCompleted || toggled.CompletedAt == nil {
		t.Fatal("expected completion with timestamp")
	}
	if tr.LogFor(model.Today()).TasksCompleted != 1 {
		t.Fatal("completion must count toward today")
	}
}

func TestToggleTaskSameDayUndoDecrements(t *testing.T) {
	tr := newTestTracker(t)
	task := addTask(t, tr, "undo me", "")

	if _, err := tr.ToggleTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.ToggleTask(task.ID); err != nil {
		t.Fatal(err)
	}

	if got := tr.LogFor(model.Today()).TasksCompleted; got != 0 {
		t.Fatalf("same-day undo must take the count back, got %d", got)
	}
	if tr.Tasks()[0].CompletedAt != nil {
		t.Fatal("undo must clear the completion timestamp")
	}
}

func TestToggleTaskPriorDayUndoLeavesLogsAlone(t *testing.T) {
	tr := newTestTracker(t)
	task := addTask(t, tr, "old completion", "")

	// Backdate the completion to yesterday, as if the process had been
	// running across midnight.
	yesterday := time.Now().AddDate(0, 0, -1)
	task.IsCompleted = true
	task.CompletedAt = &yesterday
	if err := tr.UpdateTask(task); err != nil {
		t.Fatal(err)
	}
	yesterdayKey := model.DateKey(yesterday)
	if err := tr.RecordPomodoroCompleted(yesterdayKey); err != nil {
		t.Fatal(err)
	}
	before := tr.LogFor(yesterdayKey)

	if _, err := tr.ToggleTask(task.ID); err != nil {
		t.Fatal(err)
	}

	if tr.LogFor(yesterdayKey) != before {
		t.Fatal("undoing an old completion must not rewrite history")
	}
	if got := tr.LogFor(model.Today()).TasksCompleted; got != 0 {
		t.Fatalf("today's count must stay untouched, got %d", got)
	}
}

func TestRecordTaskToggledFloorsAtZero(t *testing.T) {
	tr := newTestTracker(t)

	// An undo arriving when the counter is already zero stays at zero.
	if err := tr.recordTaskToggled("2024-01-10", false, true); err != nil {
		t.Fatal(err)
	}
	if got := tr.LogFor("2024-01-10").TasksCompleted; got != 0 {
		t.Fatalf("counter must not go negative, got %d", got)
	}
}
