package domain

import "time"

// TaskStatus enumerates board columns for tasks.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusPlanning   TaskStatus = "PLANNING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked    TaskStatus = "BLOCKED"
	TaskStatusOnHold     TaskStatus = "ON_HOLD"
	TaskStatusComplete   TaskStatus = "COMPLETE"
)

// Valid reports whether the status belongs to the closed set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusPlanning, TaskStatusInProgress,
		TaskStatusBlocked, TaskStatusOnHold, TaskStatusComplete:
		return true
	}
	return false
}

// TaskPriority enumerates urgency, ordered Low < Medium < High < Critical.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

// TaskType distinguishes epics from regular tasks.
type TaskType string

const (
	TaskTypeTask TaskType = "TASK"
	TaskTypeEpic TaskType = "EPIC"
)

// TaskAttributes is a fixed bag of capability flags.
type TaskAttributes struct {
	Development bool `json:"development"`
	IXD         bool `json:"ixd"`
	QA          bool `json:"qa"`
}

// ProjectLink is an external reference attached to a task.
type ProjectLink struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Comment is a discussion entry on a task.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is the aggregate for board cards. AssigneeID references a Member id;
// an id with no matching member is a silent miss, not an error.
type Task struct {
	ID               string
	Title            string
	Status           TaskStatus
	CustomStatusText string
	Priority         TaskPriority
	Type             TaskType
	Tags             []string
	AssigneeID       *string
	DueDate          time.Time
	Comments         []Comment
	ProjectLinks     []ProjectLink
	Attributes       TaskAttributes
	IsMilestone      bool
	SubTaskIDs       []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StatusLabel returns the free-text override when present, otherwise the
// canonical status value.
func (t *Task) StatusLabel() string {
	if t.CustomStatusText != "" {
		return t.CustomStatusText
	}
	return string(t.Status)
}

// IsEpic reports whether the task is an epic aggregate.
func (t *Task) IsEpic() bool {
	return t.Type == TaskTypeEpic
}

// Overdue compares the due date against the supplied clock reading.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate.Before(now)
}
