package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// ToCSV writes tasks and daily logs as two CSV files sharing a path prefix:
// <prefix>-tasks.csv and <prefix>-logs.csv. Returns the written paths.
func ToCSV(snap Snapshot, prefix string) (taskPath, logPath string, err error) {
	taskPath = prefix + "-tasks.csv"
	logPath = prefix + "-logs.csv"

	if err := writeTasksCSV(snap, taskPath); err != nil {
		return "", "", err
	}
	if err := writeLogsCSV(snap, logPath); err != nil {
		return "", "", err
	}
	return taskPath, logPath, nil
}

func writeTasksCSV(snap Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Name", "Goal", "Estimated", "Completed Pomodoros", "Done", "Created", "Completed At"}); err != nil {
		return err
	}

	goalNames := goalNameIndex(snap.Goals)
	for _, t := range snap.Tasks {
		completedAt := ""
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.Local().Format(time.RFC3339)
		}
		row := []string{
			t.ID,
			t.Name,
			goalNames[t.GoalID],
			fmt.Sprintf("%d", t.EstimatedPomodoros),
			fmt.Sprintf("%d", t.CompletedPomodoros),
			fmt.Sprintf("%t", t.IsCompleted),
			t.CreatedAt.Local().Format(time.RFC3339),
			completedAt,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeLogsCSV(snap Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Pomodoros Target", "Tasks Target", "Pomodoros Completed", "Tasks Completed"}); err != nil {
		return err
	}

	for _, log := range sortedLogs(snap.Logs) {
		row := []string{
			log.Date,
			fmt.Sprintf("%d", log.PomodorosTarget),
			fmt.Sprintf("%d", log.TasksTarget),
			fmt.Sprintf("%d", log.PomodorosCompleted),
			fmt.Sprintf("%d", log.TasksCompleted),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
