package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusflow/internal/model"
)

func testSnapshot() Snapshot {
	completed := time.Date(2024, 1, 10, 14, 30, 0, 0, time.Local)
	return Snapshot{
		Tasks: []model.Task{
			{
				ID:                 "t1",
				Name:               "write report",
				EstimatedPomodoros: 3,
				CompletedPomodoros: 2,
				IsCompleted:        true,
				CreatedAt:          completed.Add(-48 * time.Hour),
				CompletedAt:        &completed,
				GoalID:             "g1",
			},
			{ID: "t2", Name: "loose end", EstimatedPomodoros: 1, CreatedAt: completed},
		},
		Goals: []model.Goal{
			{ID: "g1", Name: "Q1 launch", CreatedAt: completed},
		},
		Logs: map[string]model.DailyLog{
			"2024-01-11": {Date: "2024-01-11", PomodorosTarget: 8, TasksTarget: 3, PomodorosCompleted: 1},
			"2024-01-10": {Date: "2024-01-10", PomodorosTarget: 8, TasksTarget: 3, PomodorosCompleted: 5, TasksCompleted: 2},
		},
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(testSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var parsed struct {
		ExportedAt string `json:"exported_at"`
		Tasks      []struct {
			ID   string `json:"id"`
			Goal string `json:"goal"`
		} `json:"tasks"`
		Goals     []model.Goal     `json:"goals"`
		DailyLogs []model.DailyLog `json:"daily_logs"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	if parsed.ExportedAt == "" {
		t.Fatal("missing export timestamp")
	}
	if len(parsed.Tasks) != 2 || len(parsed.Goals) != 1 {
		t.Fatalf("unexpected counts: %d tasks, %d goals", len(parsed.Tasks), len(parsed.Goals))
	}
	if parsed.Tasks[0].Goal != "Q1 launch" {
		t.Fatalf("task must carry its goal name, got %q", parsed.Tasks[0].Goal)
	}
	if parsed.Tasks[1].Goal != "" {
		t.Fatalf("unassigned task must have no goal name, got %q", parsed.Tasks[1].Goal)
	}
	if len(parsed.DailyLogs) != 2 || parsed.DailyLogs[0].Date != "2024-01-10" {
		t.Fatal("daily logs must come out date-sorted")
	}
}

func TestToCSV(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "export")
	taskPath, logPath, err := ToCSV(testSnapshot(), prefix)
	if err != nil {
		t.Fatal(err)
	}

	tasks := readCSV(t, taskPath)
	if len(tasks) != 3 {
		t.Fatalf("expected header + 2 task rows, got %d", len(tasks))
	}
	if tasks[1][1] != "write report" || tasks[1][2] != "Q1 launch" || tasks[1][5] != "true" {
		t.Fatalf("unexpected task row: %v", tasks[1])
	}
	if tasks[2][2] != "" || tasks[2][7] != "" {
		t.Fatalf("unassigned open task must have empty goal and completion: %v", tasks[2])
	}

	logs := readCSV(t, logPath)
	if len(logs) != 3 {
		t.Fatalf("expected header + 2 log rows, got %d", len(logs))
	}
	if logs[1][0] != "2024-01-10" || logs[2][0] != "2024-01-11" {
		t.Fatalf("log rows must be date-sorted: %v", logs)
	}
	if logs[1][3] != "5" || logs[1][4] != "2" {
		t.Fatalf("unexpected log row: %v", logs[1])
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}
