package tracker

import (
	"fmt"

	"focusflow/internal/model"
)

// The tracker is the sole writer of daily-log completion counters; view code
// only reads them. Logs are created lazily with default targets the first
// time a date is touched.

// Logs returns the full date-keyed log map.
func (tr *Tracker) Logs() map[string]model.DailyLog {
	return tr.logs.Get()
}

// LogFor returns the log for date, synthesizing the lazy default if that
// date has never been touched. It does not write.
func (tr *Tracker) LogFor(date string) model.DailyLog {
	if log, ok := tr.logs.Get()[date]; ok {
		return log
	}
	return model.NewDailyLog(date)
}

// EnsureLog materializes the log for date so targets show up on first
// launch of a new day.
func (tr *Tracker) EnsureLog(date string) error {
	_, err := tr.logs.Update(func(logs map[string]model.DailyLog) map[string]model.DailyLog {
		if _, ok := logs[date]; !ok {
			logs = cloneLogs(logs)
			logs[date] = model.NewDailyLog(date)
		}
		return logs
	})
	if err != nil {
		return fmt.Errorf("ensure log %s: %w", date, err)
	}
	return nil
}

// RecordPomodoroCompleted counts one finished work session on date's log.
func (tr *Tracker) RecordPomodoroCompleted(date string) error {
	_, err := tr.logs.Update(func(logs map[string]model.DailyLog) map[string]model.DailyLog {
		logs = cloneLogs(logs)
		log := logAt(logs, date)
		log.PomodorosCompleted++
		logs[date] = log
		return logs
	})
	if err != nil {
		return fmt.Errorf("record pomodoro %s: %w", date, err)
	}
	return nil
}

// RecordWorkSessionComplete is the aggregation side effect of a natural
// work-session expiry: today's pomodoro count goes up, and if a task is
// active it earns a completed pomodoro. Break sessions have no side effect.
func (tr *Tracker) RecordWorkSessionComplete() error {
	if err := tr.RecordPomodoroCompleted(model.Today()); err != nil {
		return err
	}

	active := tr.activeID.Get()
	if active == "" {
		return nil
	}
	_, err := tr.tasks.Update(func(tasks []model.Task) []model.Task {
		for i := range tasks {
			if tasks[i].ID == active {
				tasks[i].CompletedPomodoros++
			}
		}
		return tasks
	})
	if err != nil {
		return fmt.Errorf("credit active task: %w", err)
	}
	return nil
}

// SetTargets overwrites only the target fields of date's log, preserving
// its completion counters. Targets are floored at zero.
func (tr *Tracker) SetTargets(date string, pomodorosTarget, tasksTarget int) error {
	_, err := tr.logs.Update(func(logs map[string]model.DailyLog) map[string]model.DailyLog {
		logs = cloneLogs(logs)
		log := logAt(logs, date)
		log.PomodorosTarget = model.ClampTarget(pomodorosTarget)
		log.TasksTarget = model.ClampTarget(tasksTarget)
		logs[date] = log
		return logs
	})
	if err != nil {
		return fmt.Errorf("set targets %s: %w", date, err)
	}
	return nil
}

// recordTaskToggled applies a task completion flip to date's log: completing
// counts one; un-completing a completion that happened on that same date
// takes one back (floored at zero). Undoing a different day's completion
// leaves every log untouched, preserving historical accuracy.
func (tr *Tracker) recordTaskToggled(date string, becameCompleted, completionWasOnDate bool) error {
	if !becameCompleted && !completionWasOnDate {
		return nil
	}
	_, err := tr.logs.Update(func(logs map[string]model.DailyLog) map[string]model.DailyLog {
		logs = cloneLogs(logs)
		log := logAt(logs, date)
		if becameCompleted {
			log.TasksCompleted++
		} else if log.TasksCompleted > 0 {
			log.TasksCompleted--
		}
		logs[date] = log
		return logs
	})
	if err != nil {
		return fmt.Errorf("record task toggle %s: %w", date, err)
	}
	return nil
}

func logAt(logs map[string]model.DailyLog, date string) model.DailyLog {
	if log, ok := logs[date]; ok {
		return log
	}
	return model.NewDailyLog(date)
}

// cloneLogs copies the map so transforms never mutate the value other
// readers may still hold.
func cloneLogs(logs map[string]model.DailyLog) map[string]model.DailyLog {
	out := make(map[string]model.DailyLog, len(logs)+1)
	for k, v := range logs {
		out[k] = v
	}
	return out
}
