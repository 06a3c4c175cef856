package model

import (
	"testing"
	"time"
)

func TestDateKeyRoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 10, 23, 59, 0, 0, time.Local)
	key := DateKey(ts)
	if key != "2024-01-10" {
		t.Fatalf("got %q", key)
	}

	back, err := ParseDateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	if DateKey(back) != key {
		t.Fatalf("round trip lost the date: %q", DateKey(back))
	}
}

func TestSameDate(t *testing.T) {
	lateNight := time.Date(2024, 1, 10, 23, 59, 59, 0, time.Local)
	if !SameDate(lateNight, "2024-01-10") {
		t.Fatal("same calendar day must match regardless of clock time")
	}
	if SameDate(lateNight.Add(time.Minute), "2024-01-10") {
		t.Fatal("one minute later is the next day")
	}
}

func TestClampSettingsFloors(t *testing.T) {
	s := ClampSettings(Settings{WorkDuration: 0, ShortBreakDuration: -7, LongBreakDuration: 15, PomodorosPerSet: 0})
	if s.WorkDuration != 1 || s.ShortBreakDuration != 1 || s.PomodorosPerSet != 1 {
		t.Fatalf("expected floors of 1, got %+v", s)
	}
	if s.LongBreakDuration != 15 {
		t.Fatalf("valid values must pass through, got %d", s.LongBreakDuration)
	}
}

func TestNewDailyLogDefaults(t *testing.T) {
	log := NewDailyLog("2024-01-10")
	if log.Date != "2024-01-10" {
		t.Fatalf("got date %q", log.Date)
	}
	if log.PomodorosTarget != DefaultPomodorosTarget || log.TasksTarget != DefaultTasksTarget {
		t.Fatalf("unexpected defaults: %+v", log)
	}
	if log.PomodorosCompleted != 0 || log.TasksCompleted != 0 {
		t.Fatalf("fresh log must have zero completions: %+v", log)
	}
}

func TestNewTaskAssignsID(t *testing.T) {
	a := NewTask("one", 2, "")
	b := NewTask("two", 2, "")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct IDs, got %q and %q", a.ID, b.ID)
	}
	if a.EstimatedPomodoros != 2 || a.IsCompleted {
		t.Fatalf("unexpected task: %+v", a)
	}
}
