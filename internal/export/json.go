package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"focusflow/internal/model"
)

// Snapshot is everything the exporter writes: the full durable state minus
// transient timer state.
type Snapshot struct {
	Tasks []model.Task
	Goals []model.Goal
	Logs  map[string]model.DailyLog
}

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	Tasks      []jsonTask       `json:"tasks"`
	Goals      []model.Goal     `json:"goals"`
	DailyLogs  []model.DailyLog `json:"daily_logs"`
}

type jsonTask struct {
	model.Task
	Goal string `json:"goal,omitempty"`
}

// ToJSON writes the snapshot as indented JSON. Daily logs come out
// date-sorted so diffs between exports stay readable.
func ToJSON(snap Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Goals:      snap.Goals,
		DailyLogs:  sortedLogs(snap.Logs),
	}

	goalNames := goalNameIndex(snap.Goals)
	for _, t := range snap.Tasks {
		export.Tasks = append(export.Tasks, jsonTask{Task: t, Goal: goalNames[t.GoalID]})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func sortedLogs(logs map[string]model.DailyLog) []model.DailyLog {
	out := make([]model.DailyLog, 0, len(logs))
	for _, log := range logs {
		out = append(out, log)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func goalNameIndex(goals []model.Goal) map[string]string {
	idx := make(map[string]string, len(goals))
	for _, g := range goals {
		idx[g.ID] = g.Name
	}
	return idx
}
