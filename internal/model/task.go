package model

import "time"

// TaskType is the kind of warehouse work a task represents.
type TaskType string

// Task types.
const (
	TaskReceive  TaskType = "receive"
	TaskPutaway  TaskType = "putaway"
	TaskPick     TaskType = "pick"
	TaskMove     TaskType = "move"
	TaskDispatch TaskType = "dispatch"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses.
const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// taskTransitions lists the allowed moves out of each non-terminal status.
// A pending task may be completed directly (quick complete).
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskCompleted, TaskCancelled},
	TaskInProgress: {TaskCompleted, TaskCancelled},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// LineLocation describes where a task line is picked from or put to.
type LineLocation struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// TaskLine is a single SKU handled by a task.
type TaskLine struct {
	SKU      string        `json:"sku"`
	Name     string        `json:"name"`
	Quantity int           `json:"quantity"`
	Location *LineLocation `json:"location,omitempty"`
}

// Task is a unit of warehouse work.
type Task struct {
	ID            string       `json:"id"`
	Type          TaskType     `json:"type"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	AssignedTo    string       `json:"assignedTo"`
	CreatedAt     time.Time    `json:"createdAt"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	Items         []TaskLine   `json:"items"`
	Instructions  string       `json:"instructions,omitempty"`
	EstimatedTime int          `json:"estimatedTime,omitempty"` // minutes
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	t.DueDate = cloneTime(t.DueDate)
	t.CompletedAt = cloneTime(t.CompletedAt)
	t.Items = CloneLines(t.Items)
	return t
}

// CloneLines deep-copies a slice of task lines.
func CloneLines(lines []TaskLine) []TaskLine {
	if lines == nil {
		return nil
	}
	out := make([]TaskLine, len(lines))
	for i, l := range lines {
		if l.Location != nil {
			loc := *l.Location
			l.Location = &loc
		}
		out[i] = l
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
