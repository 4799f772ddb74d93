package events

import (
	"time"

	"github.com/spec-kit/project-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberInvited       EventType = "member_invited"
	EventMemberUpdated       EventType = "member_updated"
	EventMemberRoleChanged   EventType = "member_role_changed"
	EventMemberAvatarChanged EventType = "member_avatar_changed"
	EventMemberRemoved       EventType = "member_removed"
	EventTaskCreated         EventType = "task_created"
	EventTaskUpdated         EventType = "task_updated"
	EventTaskMoved           EventType = "task_moved"
	EventStatusUpdatePosted  EventType = "status_update_posted"
)

// Actor identifies the member who triggered an event.
type Actor struct {
	MemberID string      `json:"member_id"`
	Role     domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberInvitedPayload payload.
type MemberInvitedPayload struct {
	Name  string      `json:"name"`
	Alias string      `json:"alias"`
	Role  domain.Role `json:"role"`
}

// MemberRoleChangedPayload payload.
type MemberRoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// MemberRemovedPayload payload.
type MemberRemovedPayload struct {
	Name string `json:"name"`
}

// TaskMovedPayload payload.
type TaskMovedPayload struct {
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// StatusUpdatePostedPayload payload.
type StatusUpdatePostedPayload struct {
	Title      string            `json:"title"`
	Type       domain.UpdateType `json:"type"`
	AuthorName string            `json:"author_name"`
}
