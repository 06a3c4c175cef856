package model

// Invalid input is floored at the minimum valid value before it reaches the
// store; mutators never persist an out-of-range number.

// ClampSettings floors every field of s at its minimum valid value.
func ClampSettings(s Settings) Settings {
	s.WorkDuration = clampMin(s.WorkDuration, 1)
	s.ShortBreakDuration = clampMin(s.ShortBreakDuration, 1)
	s.LongBreakDuration = clampMin(s.LongBreakDuration, 1)
	s.PomodorosPerSet = clampMin(s.PomodorosPerSet, 1)
	return s
}

// ClampEstimate floors a task's estimated pomodoros at 1.
func ClampEstimate(n int) int {
	return clampMin(n, 1)
}

// ClampTarget floors a daily target at 0.
func ClampTarget(n int) int {
	return clampMin(n, 0)
}

func clampMin(n, floor int) int {
	if n < floor {
		return floor
	}
	return n
}
