package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work estimated and completed in pomodoros. Order is
// unique within its sibling scope: tasks sharing the same GoalID (including
// the empty "no goal" scope) form one ordering sequence.
type Task struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	EstimatedPomodoros int        `json:"estimatedPomodoros"`
	CompletedPomodoros int        `json:"completedPomodoros"`
	IsCompleted        bool       `json:"isCompleted"`
	CreatedAt          time.Time  `json:"createdAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	Order              int        `json:"order"`
	GoalID             string     `json:"goalId,omitempty"`
}

// Goal groups tasks. Order is unique among all goals.
type Goal struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	Order       int        `json:"order"`
}

// DailyLog aggregates targets and completions for one calendar date.
// Exactly one log exists per date; it is created lazily with default
// targets the first time the date is touched.
type DailyLog struct {
	Date               string `json:"date"` // YYYY-MM-DD
	PomodorosTarget    int    `json:"pomodorosTarget"`
	TasksTarget        int    `json:"tasksTarget"`
	PomodorosCompleted int    `json:"pomodorosCompleted"`
	TasksCompleted     int    `json:"tasksCompleted"`
}

// Settings holds the interval timer configuration. Durations are minutes.
type Settings struct {
	WorkDuration       int `json:"workDuration"`
	ShortBreakDuration int `json:"shortBreakDuration"`
	LongBreakDuration  int `json:"longBreakDuration"`
	PomodorosPerSet    int `json:"pomodorosPerSet"`
}

const (
	DefaultWorkMinutes       = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
	DefaultPomodorosPerSet   = 4

	DefaultPomodorosTarget = 8
	DefaultTasksTarget     = 3
)

// DefaultSettings returns the stock timer configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:       DefaultWorkMinutes,
		ShortBreakDuration: DefaultShortBreakMinutes,
		LongBreakDuration:  DefaultLongBreakMinutes,
		PomodorosPerSet:    DefaultPomodorosPerSet,
	}
}

// NewDailyLog returns a fresh log for date with default targets and zero
// completions.
func NewDailyLog(date string) DailyLog {
	return DailyLog{
		Date:            date,
		PomodorosTarget: DefaultPomodorosTarget,
		TasksTarget:     DefaultTasksTarget,
	}
}

// NewTask builds a task with a fresh ID. Order assignment is the caller's
// job (the scope decides it).
func NewTask(name string, estimated int, goalID string) Task {
	return Task{
		ID:                 uuid.NewString(),
		Name:               name,
		EstimatedPomodoros: ClampEstimate(estimated),
		CreatedAt:          time.Now(),
		GoalID:             goalID,
	}
}

// NewGoal builds a goal with a fresh ID.
func NewGoal(name, description string) Goal {
	return Goal{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
