package store

// Logical keys of the durable layout. Each holds one serialized value.
const (
	KeyTasks        = "tasks"             // []model.Task
	KeyGoals        = "goals"             // []model.Goal
	KeyDailyLogs    = "daily_logs"        // map[date]model.DailyLog
	KeySettings     = "pomodoro_settings" // model.Settings
	KeyActiveTaskID = "active_task_id"    // string, "" = none
)
