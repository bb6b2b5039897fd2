package model

import "time"

// Priority is the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities are the allowed task priorities.
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// ISOLayout matches the millisecond UTC timestamps the planner persists.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// Task is a planner to-do item. Completed only ever moves from false to true.
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"createdAt"`
}

// Goal is a longer-running objective. Progress is 0..100.
type Goal struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Deadline  string `json:"deadline,omitempty"`
	Progress  int    `json:"progress"`
	CreatedAt string `json:"createdAt"`
}

// PlannerSnapshot is the persisted form of the planner.
type PlannerSnapshot struct {
	Tasks []Task `json:"tasks"`
	Goals []Goal `json:"goals"`
}
