package dto

import (
	"time"

	"github.com/spec-kit/project-board/internal/domain"
)

// TaskRequest is the create/update payload for tasks.
type TaskRequest struct {
	Title            string                `json:"title"`
	Status           string                `json:"status"`
	CustomStatusText string                `json:"custom_status_text"`
	Priority         string                `json:"priority"`
	Type             string                `json:"type"`
	Tags             []string              `json:"tags"`
	AssigneeID       *string               `json:"assignee_id"`
	DueDate          time.Time             `json:"due_date"`
	ProjectLinks     []domain.ProjectLink  `json:"project_links"`
	Attributes       domain.TaskAttributes `json:"attributes"`
	IsMilestone      bool                  `json:"is_milestone"`
	SubTaskIDs       []string              `json:"subtask_ids"`
}

// MoveTaskRequest applies a board drop. Payload carries the dragged task id
// as plain text; Target names the destination column.
type MoveTaskRequest struct {
	Payload string `json:"payload"`
	Target  string `json:"target"`
}

// CommentRequest payload.
type CommentRequest struct {
	Body string `json:"body"`
}

// TaskDetail is the full wire view of a task.
type TaskDetail struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Status           string                `json:"status"`
	CustomStatusText string                `json:"custom_status_text,omitempty"`
	Priority         string                `json:"priority"`
	Type             string                `json:"type"`
	Tags             []string              `json:"tags"`
	AssigneeID       *string               `json:"assignee_id,omitempty"`
	DueDate          time.Time             `json:"due_date"`
	Comments         []domain.Comment      `json:"comments"`
	ProjectLinks     []domain.ProjectLink  `json:"project_links"`
	Attributes       domain.TaskAttributes `json:"attributes"`
	IsMilestone      bool                  `json:"is_milestone"`
	SubTaskIDs       []string              `json:"subtask_ids"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}
