// Package summary provides read-side date-range bucketing over the daily
// logs. It never writes; the tracker owns the log store.
package summary

import (
	"time"

	"focusflow/internal/model"
	"focusflow/internal/motivator"
)

const (
	WeeklyDays  = 7
	MonthlyDays = 28
)

// Window is a contiguous run of daily logs ending on a given day, with the
// four counters summed across it. Dates with no stored log appear as
// zero-valued entries so charts stay aligned; absent days contribute no
// targets.
type Window struct {
	Logs []model.DailyLog

	PomodorosCompleted int
	TasksCompleted     int
	PomodorosTarget    int
	TasksTarget        int
}

// LastNDays buckets the trailing days-long window ending on (and including)
// end's calendar date, oldest first.
func LastNDays(logs map[string]model.DailyLog, end time.Time, days int) Window {
	var w Window
	start := end.AddDate(0, 0, -(days - 1))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := model.DateKey(d)
		log, ok := logs[date]
		if !ok {
			log = model.DailyLog{Date: date}
		}
		w.Logs = append(w.Logs, log)
		w.PomodorosCompleted += log.PomodorosCompleted
		w.TasksCompleted += log.TasksCompleted
		w.PomodorosTarget += log.PomodorosTarget
		w.TasksTarget += log.TasksTarget
	}
	return w
}

// Weekly is the last-7-days window ending today.
func Weekly(logs map[string]model.DailyLog, now time.Time) Window {
	return LastNDays(logs, now, WeeklyDays)
}

// Monthly is the last-28-days window ending today.
func Monthly(logs map[string]model.DailyLog, now time.Time) Window {
	return LastNDays(logs, now, MonthlyDays)
}

// MotivatorInput packages the window's totals for the motivational-message
// collaborator.
func (w Window) MotivatorInput() motivator.Input {
	return motivator.Input{
		WeeklyPomodorosCompleted: w.PomodorosCompleted,
		WeeklyTasksCompleted:     w.TasksCompleted,
		WeeklyGoalPomodoros:      w.PomodorosTarget,
		WeeklyGoalTasks:          w.TasksTarget,
	}
}
