package domain

import "time"

// maxVisibleTags caps how many tags a card surfaces.
const maxVisibleTags = 3

// CardAssignee is the resolved assignee shown on a card.
type CardAssignee struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// CardSummary is the derived board-card view of a task. It is recomputed per
// request; nothing here is cached.
type CardSummary struct {
	TaskID         string         `json:"task_id"`
	Title          string         `json:"title"`
	StatusLabel    string         `json:"status_label"`
	Status         TaskStatus     `json:"status"`
	Priority       TaskPriority   `json:"priority"`
	EpicBadge      bool           `json:"epic_badge"`
	MilestoneBadge bool           `json:"milestone_badge"`
	SubTaskCount   int            `json:"subtask_count"`
	VisibleTags    []string       `json:"visible_tags"`
	Assignee       *CardAssignee  `json:"assignee,omitempty"`
	CommentCount   int            `json:"comment_count"`
	LinkCount      int            `json:"link_count"`
	FirstLink      *ProjectLink   `json:"first_link,omitempty"`
	DueDate        time.Time      `json:"due_date"`
	Overdue        bool           `json:"overdue"`
	Attributes     TaskAttributes `json:"attributes"`
	IsMilestone    bool           `json:"is_milestone"`
	DragPayload    string         `json:"drag_payload"`
}

// BuildCardSummary derives the card view for a task. The assignee is looked
// up in the supplied index; a miss leaves Assignee nil so the caller renders
// a placeholder. Both badges may be set at once for milestone epics.
func BuildCardSummary(task *Task, members map[string]*Member, now time.Time) CardSummary {
	summary := CardSummary{
		TaskID:         task.ID,
		Title:          task.Title,
		StatusLabel:    task.StatusLabel(),
		Status:         task.Status,
		Priority:       task.Priority,
		EpicBadge:      task.IsEpic(),
		MilestoneBadge: task.IsMilestone,
		SubTaskCount:   len(task.SubTaskIDs),
		CommentCount:   len(task.Comments),
		LinkCount:      len(task.ProjectLinks),
		DueDate:        task.DueDate,
		Overdue:        task.Overdue(now),
		Attributes:     task.Attributes,
		IsMilestone:    task.IsMilestone,
		DragPayload:    task.ID,
	}
	if summary.Title == "" {
		summary.Title = "Untitled Task"
	}

	visible := task.Tags
	if len(visible) > maxVisibleTags {
		visible = visible[:maxVisibleTags]
	}
	summary.VisibleTags = append([]string{}, visible...)

	if task.AssigneeID != nil {
		if member, ok := members[*task.AssigneeID]; ok {
			summary.Assignee = &CardAssignee{
				ID:        member.ID,
				Name:      member.Name,
				AvatarURL: member.AvatarURL,
			}
		}
	}

	if len(task.ProjectLinks) > 0 {
		link := task.ProjectLinks[0]
		summary.FirstLink = &link
	}

	return summary
}
