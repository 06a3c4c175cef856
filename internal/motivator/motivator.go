// Package motivator talks to the external AI collaborator that turns a
// weekly productivity summary into an encouraging message. It is specified
// only at this interface; failures are transient and retryable, never
// fatal, and never touch stored state.
package motivator

import "context"

// Input is a pre-aggregated weekly summary: four non-negative integers,
// the sums of the daily-log fields over a 7-day window.
type Input struct {
	WeeklyPomodorosCompleted int `json:"weeklyPomodorosCompleted"`
	WeeklyTasksCompleted     int `json:"weeklyTasksCompleted"`
	WeeklyGoalPomodoros      int `json:"weeklyGoalPomodoros"`
	WeeklyGoalTasks          int `json:"weeklyGoalTasks"`
}

// Output carries the generated message.
type Output struct {
	MotivationMessage string `json:"motivationMessage"`
}

// Generator produces a motivational message for a weekly summary.
type Generator interface {
	Generate(ctx context.Context, in Input) (Output, error)
}
