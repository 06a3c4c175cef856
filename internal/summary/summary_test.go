package summary

import (
	"testing"
	"time"

	"focusflow/internal/model"
)

func logOn(date string, poms, tasks int) model.DailyLog {
	log := model.NewDailyLog(date)
	log.PomodorosCompleted = poms
	log.TasksCompleted = tasks
	return log
}

func TestWeeklyCoversTrailingSevenDays(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	logs := map[string]model.DailyLog{
		"2024-01-04": logOn("2024-01-04", 2, 1),
		"2024-01-10": logOn("2024-01-10", 5, 2),
		"2024-01-03": logOn("2024-01-03", 9, 9), // day before the window
	}

	w := Weekly(logs, now)

	if len(w.Logs) != 7 {
		t.Fatalf("expected 7 days, got %d", len(w.Logs))
	}
	if w.Logs[0].Date != "2024-01-04" || w.Logs[6].Date != "2024-01-10" {
		t.Fatalf("window bounds wrong: %s .. %s", w.Logs[0].Date, w.Logs[6].Date)
	}
	if w.PomodorosCompleted != 7 || w.TasksCompleted != 3 {
		t.Fatalf("totals must exclude days outside the window: %+v", w)
	}
}

func TestWindowZeroFillsMissingDates(t *testing.T) {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	logs := map[string]model.DailyLog{
		"2024-01-10": logOn("2024-01-10", 1, 0),
	}

	w := Weekly(logs, now)

	for _, day := range w.Logs[:6] {
		if day.PomodorosCompleted != 0 || day.TasksCompleted != 0 {
			t.Fatalf("missing day %s must be zero-valued: %+v", day.Date, day)
		}
		if day.PomodorosTarget != 0 || day.TasksTarget != 0 {
			t.Fatalf("absent day %s must contribute no targets: %+v", day.Date, day)
		}
	}
	// Only the one stored day brings its default targets into the totals.
	if w.PomodorosTarget != model.DefaultPomodorosTarget || w.TasksTarget != model.DefaultTasksTarget {
		t.Fatalf("unexpected target totals: %+v", w)
	}
}

func TestWindowOnEmptyHistory(t *testing.T) {
	w := Weekly(nil, time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local))

	if len(w.Logs) != 7 {
		t.Fatalf("expected 7 zero-filled days, got %d", len(w.Logs))
	}
	if w.PomodorosCompleted != 0 || w.TasksCompleted != 0 || w.PomodorosTarget != 0 || w.TasksTarget != 0 {
		t.Fatalf("expected all-zero totals, got %+v", w)
	}
}

func TestMonthlySpansTwentyEightDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	w := Monthly(nil, now)

	if len(w.Logs) != 28 {
		t.Fatalf("expected 28 days, got %d", len(w.Logs))
	}
	// Crosses the February boundary.
	if w.Logs[0].Date != "2024-02-03" || w.Logs[27].Date != "2024-03-01" {
		t.Fatalf("month window bounds wrong: %s .. %s", w.Logs[0].Date, w.Logs[27].Date)
	}
}

func TestMotivatorInputCarriesTotals(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	logs := map[string]model.DailyLog{
		"2024-01-09": logOn("2024-01-09", 4, 2),
		"2024-01-10": logOn("2024-01-10", 3, 1),
	}

	in := Weekly(logs, now).MotivatorInput()

	if in.WeeklyPomodorosCompleted != 7 || in.WeeklyTasksCompleted != 3 {
		t.Fatalf("completed totals wrong: %+v", in)
	}
	if in.WeeklyGoalPomodoros != 2*model.DefaultPomodorosTarget || in.WeeklyGoalTasks != 2*model.DefaultTasksTarget {
		t.Fatalf("target totals wrong: %+v", in)
	}
}
