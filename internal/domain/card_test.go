package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardClock = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestBuildCardSummary(t *testing.T) {
	assignee := "m1"
	members := map[string]*Member{
		"m1": {ID: "m1", Name: "Sarah Connor", AvatarURL: "https://example.com/a.svg"},
	}
	task := &Task{
		ID:         "t1",
		Title:      "Fix build",
		Status:     TaskStatusInProgress,
		Priority:   TaskPriorityHigh,
		Tags:       []string{"ci", "infra"},
		AssigneeID: &assignee,
		DueDate:    cardClock.Add(48 * time.Hour),
		Comments:   []Comment{{ID: "c1"}, {ID: "c2"}},
		ProjectLinks: []ProjectLink{
			{URL: "https://ci.example.com", Title: "Pipeline"},
			{URL: "https://logs.example.com", Title: "Logs"},
		},
		SubTaskIDs: []string{"s1", "s2", "s3"},
	}

	card := BuildCardSummary(task, members, cardClock)

	assert.Equal(t, "t1", card.TaskID)
	assert.Equal(t, "Fix build", card.Title)
	assert.Equal(t, "IN_PROGRESS", card.StatusLabel)
	assert.Equal(t, 3, card.SubTaskCount)
	assert.Equal(t, 2, card.CommentCount)
	assert.Equal(t, 2, card.LinkCount)
	assert.False(t, card.Overdue)
	assert.Equal(t, "t1", card.DragPayload, "the drag payload carries the task id as plain text")

	require.NotNil(t, card.Assignee)
	assert.Equal(t, "Sarah Connor", card.Assignee.Name)
	assert.Equal(t, "https://example.com/a.svg", card.Assignee.AvatarURL)

	require.NotNil(t, card.FirstLink)
	assert.Equal(t, "Pipeline", card.FirstLink.Title)
}

func TestBuildCardSummaryUnknownAssignee(t *testing.T) {
	ghost := "nobody"
	task := &Task{ID: "t1", Title: "Orphaned", AssigneeID: &ghost}

	card := BuildCardSummary(task, map[string]*Member{}, cardClock)
	assert.Nil(t, card.Assignee, "a dangling assignee id renders the placeholder, not an error")
}

func TestBuildCardSummaryCapsVisibleTags(t *testing.T) {
	task := &Task{ID: "t1", Title: "Tagged", Tags: []string{"a", "b", "c", "d", "e"}}

	card := BuildCardSummary(task, nil, cardClock)
	assert.Equal(t, []string{"a", "b", "c"}, card.VisibleTags)
}

func TestBuildCardSummaryUntitledFallback(t *testing.T) {
	task := &Task{ID: "t1"}

	card := BuildCardSummary(task, nil, cardClock)
	assert.Equal(t, "Untitled Task", card.Title)
}

func TestBuildCardSummaryMilestoneEpicShowsBothBadges(t *testing.T) {
	task := &Task{ID: "t1", Title: "Launch", Type: TaskTypeEpic, IsMilestone: true}

	card := BuildCardSummary(task, nil, cardClock)
	assert.True(t, card.EpicBadge)
	assert.True(t, card.MilestoneBadge)
}

func TestBuildCardSummaryCustomStatusText(t *testing.T) {
	task := &Task{ID: "t1", Title: "Waiting", Status: TaskStatusOnHold, CustomStatusText: "Waiting on vendor"}

	card := BuildCardSummary(task, nil, cardClock)
	assert.Equal(t, "Waiting on vendor", card.StatusLabel)
	assert.Equal(t, TaskStatusOnHold, card.Status, "the canonical status drives column placement regardless of the label")
}

func TestTaskOverdue(t *testing.T) {
	task := &Task{DueDate: cardClock.Add(-time.Minute)}
	assert.True(t, task.Overdue(cardClock))

	task.DueDate = cardClock.Add(time.Minute)
	assert.False(t, task.Overdue(cardClock))
}
