package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"focusflow/internal/model"
	"focusflow/internal/store"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyName = errors.New("name must not be empty")
)

// Tracker owns the durable state: tasks, goals, daily logs, timer settings
// and the active-task reference. Every mutation is a read-modify-write
// transform over the store, so interleaved UI actions compose without lost
// updates.
type Tracker struct {
	tasks    *store.Value[[]model.Task]
	goals    *store.Value[[]model.Goal]
	logs     *store.Value[map[string]model.DailyLog]
	settings *store.Value[model.Settings]
	activeID *store.Value[string]
}

// Open binds the tracker's logical keys in s.
func Open(s *store.Store) *Tracker {
	return &Tracker{
		tasks:    store.NewValue(s, store.KeyTasks, func() []model.Task { return nil }),
		goals:    store.NewValue(s, store.KeyGoals, func() []model.Goal { return nil }),
		logs:     store.NewValue(s, store.KeyDailyLogs, func() map[string]model.DailyLog { return map[string]model.DailyLog{} }),
		settings: store.NewValue(s, store.KeySettings, model.DefaultSettings),
		activeID: store.NewValue(s, store.KeyActiveTaskID, func() string { return "" }),
	}
}

// ============================================================
// Tasks
// ============================================================

// Tasks returns all tasks, unordered. Use TasksInScope for display order.
func (tr *Tracker) Tasks() []model.Task {
	return tr.tasks.Get()
}

// TasksInScope returns the tasks of one ordering scope (tasks sharing
// goalID; "" is the no-goal scope) sorted by their order field.
func (tr *Tracker) TasksInScope(goalID string) []model.Task {
	var scope []model.Task
	for _, t := range tr.tasks.Get() {
		if t.GoalID == goalID {
			scope = append(scope, t)
		}
	}
	sort.Slice(scope, func(i, j int) bool { return scope[i].Order < scope[j].Order })
	return scope
}

// AddTask appends a task to its scope with order max+1 (0 for an empty
// scope). Adding the first task while nothing is active makes it active.
func (tr *Tracker) AddTask(name string, estimated int, goalID string) (model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Task{}, ErrEmptyName
	}

	task := model.NewTask(name, estimated, goalID)
	_, err := tr.tasks.Update(func(tasks []model.Task) []model.Task {
		task.Order = nextOrder(tasks, goalID)
		return append(tasks, task)
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}

	if tr.activeID.Get() == "" {
		if err := tr.SetActiveTask(task.ID); err != nil {
			return task, err
		}
	}
	return task, nil
}

func nextOrder(tasks []model.Task, goalID string) int {
	next := 0
	for _, t := range tasks {
		if t.GoalID == goalID && t.Order >= next {
			next = t.Order + 1
		}
	}
	return next
}

// UpdateTask replaces the stored task with the same ID. Name and estimate
// are validated/floored; completion fields pass through untouched. Moving
// the task to a different goal appends it to the end of the new scope so
// per-scope orders stay unique.
func (tr *Tracker) UpdateTask(task model.Task) error {
	task.Name = strings.TrimSpace(task.Name)
	if task.Name == "" {
		return ErrEmptyName
	}
	task.EstimatedPomodoros = model.ClampEstimate(task.EstimatedPomodoros)

	found := false
	_, err := tr.tasks.Update(func(tasks []model.Task) []model.Task {
		for i := range tasks {
			if tasks[i].ID == task.ID {
				if tasks[i].GoalID != task.GoalID {
					task.Order = nextOrder(tasks, task.GoalID)
				}
				tasks[i] = task
				found = true
			}
		}
		return tasks
	})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if !found {
		return fmt.Errorf("update task %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask removes the task and defensively clears the active-task
// reference if it pointed at it. Daily logs are not rewritten.
func (tr *Tracker) DeleteTask(id string) error {
	_, err := tr.tasks.Update(func(tasks []model.Task) []model.Task {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		return kept
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tr.activeID.Get() == id {
		return tr.SetActiveTask("")
	}
	return nil
}

// ToggleTask flips a task's completion. Completing stamps CompletedAt and
// counts toward today's log; un-completing clears the stamp and only
// decrements today's count when the completion being undone happened today.
// A log is never retroactively edited by an unrelated day's action.
func (tr *Tracker) ToggleTask(id string) (model.Task, error) {
	now := time.Now()
	today := model.DateKey(now)

	var toggled model.Task
	var wasCompletedToday bool
	found := false
	_, err := tr.tasks.Update(func(tasks []model.Task) []model.Task {
		for i := range tasks {
			if tasks[i].ID != id {
				continue
			}
			found = true
			if tasks[i].IsCompleted {
				wasCompletedToday = tasks[i].CompletedAt != nil && model.SameDate(*tasks[i].CompletedAt, today)
				tasks[i].IsCompleted = false
				tasks[i].CompletedAt = nil
			} else {
				completedAt := now
				tasks[i].IsCompleted = true
				tasks[i].CompletedAt = &completedAt
			}
			toggled = tasks[i]
		}
		return tasks
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("toggle task: %w", err)
	}
	if !found {
		return model.Task{}, fmt.Errorf("toggle task %s: %w", id, ErrNotFound)
	}

	if err := tr.recordTaskToggled(today, toggled.IsCompleted, wasCompletedToday); err != nil {
		return toggled, err
	}
	return toggled, nil
}

// MoveTask swaps the task's order with its neighbor in the given direction
// within its scope. At a scope boundary the move is a no-op.
func (tr *Tracker) MoveTask(id string, dir Direction) error {
	var missing bool
	_, err := tr.tasks.Update(func(tasks []model.Task) []model.Task {
		var goalID string
		found := false
		for _, t := range tasks {
			if t.ID == id {
				goalID = t.GoalID
				found = true
			}
		}
		if !found {
			missing = true
			return tasks
		}

		scope := make([]*model.Task, 0, len(tasks))
		for i := range tasks {
			if tasks[i].GoalID == goalID {
				scope = append(scope, &tasks[i])
			}
		}
		sort.Slice(scope, func(i, j int) bool { return scope[i].Order < scope[j].Order })
		swapNeighbor(scope, func(t *model.Task) bool { return t.ID == id }, func(a, b *model.Task) {
			a.Order, b.Order = b.Order, a.Order
		}, dir)
		return tasks
	})
	if err != nil {
		return fmt.Errorf("move task: %w", err)
	}
	if missing {
		return fmt.Errorf("move task %s: %w", id, ErrNotFound)
	}
	return nil
}

// ============================================================
// Goals
// ============================================================

// GoalsSorted returns all goals in display order.
func (tr *Tracker) GoalsSorted() []model.Goal {
	goals := append([]model.Goal(nil), tr.goals.Get()...)
	sort.Slice(goals, func(i, j int) bool { return goals[i].Order < goals[j].Order })
	return goals
}

// AddGoal appends a goal with order max+1 (0 when none exist).
func (tr *Tracker) AddGoal(name, description string) (model.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Goal{}, ErrEmptyName
	}

	goal := model.NewGoal(name, description)
	_, err := tr.goals.Update(func(goals []model.Goal) []model.Goal {
		next := 0
		for _, g := range goals {
			if g.Order >= next {
				next = g.Order + 1
			}
		}
		goal.Order = next
		return append(goals, goal)
	})
	if err != nil {
		return model.Goal{}, fmt.Errorf("add goal: %w", err)
	}
	return goal, nil
}

// UpdateGoal replaces the stored goal with the same ID.
func (tr *Tracker) UpdateGoal(goal model.Goal) error {
	goal.Name = strings.TrimSpace(goal.Name)
	if goal.Name == "" {
		return ErrEmptyName
	}

	found := false
	_, err := tr.goals.Update(func(goals []model.Goal) []model.Goal {
		for i := range goals {
			if goals[i].ID == goal.ID {
				goals[i] = goal
				found = true
			}
		}
		return goals
	})
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if !found {
		return fmt.Errorf("update goal %s: %w", goal.ID, ErrNotFound)
	}
	return nil
}

// ToggleGoal flips a goal's completion state.
func (tr *Tracker) ToggleGoal(id string) error {
	found := false
	_, err := tr.goals.Update(func(goals []model.Goal) []model.Goal {
		for i := range goals {
			if goals[i].ID != id {
				continue
			}
			found = true
			if goals[i].IsCompleted {
				goals[i].IsCompleted = false
				goals[i].CompletedAt = nil
			} else {
				now := time.Now()
				goals[i].IsCompleted = true
				goals[i].CompletedAt = &now
			}
		}
		return goals
	})
	if err != nil {
		return fmt.Errorf("toggle goal: %w", err)
	}
	if !found {
		return fmt.Errorf("toggle goal %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteGoal removes the goal and unlinks every task that referenced it.
// Tasks are never cascade-deleted; they drop to the end of the no-goal
// scope in their previous relative order, with fresh order numbers so the
// scope stays collision-free.
func (tr *Tracker) DeleteGoal(id string) error {
	_, err := tr.goals.Update(func(goals []model.Goal) []model.Goal {
		kept := goals[:0]
		for _, g := range goals {
			if g.ID != id {
				kept = append(kept, g)
			}
		}
		return kept
	})
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	_, err = tr.tasks.Update(func(tasks []model.Task) []model.Task {
		var moved []*model.Task
		for i := range tasks {
			if tasks[i].GoalID == id {
				moved = append(moved, &tasks[i])
			}
		}
		sort.Slice(moved, func(i, j int) bool { return moved[i].Order < moved[j].Order })
		for _, t := range moved {
			t.GoalID = ""
			t.Order = nextOrder(tasks, "")
		}
		return tasks
	})
	if err != nil {
		return fmt.Errorf("unlink goal tasks: %w", err)
	}
	return nil
}

// MoveGoal swaps the goal's order with its neighbor. Boundary moves are
// no-ops.
func (tr *Tracker) MoveGoal(id string, dir Direction) error {
	var missing bool
	_, err := tr.goals.Update(func(goals []model.Goal) []model.Goal {
		found := false
		for _, g := range goals {
			if g.ID == id {
				found = true
			}
		}
		if !found {
			missing = true
			return goals
		}

		scope := make([]*model.Goal, 0, len(goals))
		for i := range goals {
			scope = append(scope, &goals[i])
		}
		sort.Slice(scope, func(i, j int) bool { return scope[i].Order < scope[j].Order })
		swapNeighbor(scope, func(g *model.Goal) bool { return g.ID == id }, func(a, b *model.Goal) {
			a.Order, b.Order = b.Order, a.Order
		}, dir)
		return goals
	})
	if err != nil {
		return fmt.Errorf("move goal: %w", err)
	}
	if missing {
		return fmt.Errorf("move goal %s: %w", id, ErrNotFound)
	}
	return nil
}

// ============================================================
// Active task
// ============================================================

// SetActiveTask points the active-task reference at id; "" clears it.
func (tr *Tracker) SetActiveTask(id string) error {
	if err := tr.activeID.Set(id); err != nil {
		return fmt.Errorf("set active task: %w", err)
	}
	return nil
}

// ActiveTaskID returns the raw reference, which may be "".
func (tr *Tracker) ActiveTaskID() string {
	return tr.activeID.Get()
}

// ActiveTask resolves the active-task reference. A dangling reference
// (e.g. written by another process after a local delete) resolves to
// ok=false rather than failing.
func (tr *Tracker) ActiveTask() (model.Task, bool) {
	id := tr.activeID.Get()
	if id == "" {
		return model.Task{}, false
	}
	for _, t := range tr.tasks.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// ============================================================
// Timer settings
// ============================================================

// Settings returns the stored timer configuration.
func (tr *Tracker) Settings() model.Settings {
	return model.ClampSettings(tr.settings.Get())
}

// SaveSettings floors and persists a new timer configuration.
func (tr *Tracker) SaveSettings(s model.Settings) error {
	if err := tr.settings.Set(model.ClampSettings(s)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SubscribeSettings registers fn for settings changes, including external
// ones; the caller re-arms the engine from it.
func (tr *Tracker) SubscribeSettings(fn func(model.Settings)) (cancel func()) {
	return tr.settings.Subscribe(fn)
}
