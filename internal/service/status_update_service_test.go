package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
)

func TestStatusUpdateService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUpdateRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewStatusUpdateService(repo, dispatcher, func() time.Time { return testClock })

	author := &domain.Member{ID: "m1", Name: "Sarah Connor", Role: domain.RoleMember}
	update, err := svc.Create(ctx, author, StatusUpdateInput{
		Title:   "Sprint 12 wrap-up",
		Content: "All stories closed.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, update.ID)
	assert.Equal(t, domain.UpdateTypeWeekly, update.Type, "type defaults to Weekly")
	assert.Equal(t, testClock, update.Date, "date defaults to the current clock")
	assert.Equal(t, "m1", update.AuthorID)
	assert.Equal(t, "Sarah Connor", update.AuthorName, "author name is snapshotted at post time")

	require.Len(t, repo.updates, 1)
	require.Len(t, dispatcher.byType(events.EventStatusUpdatePosted), 1)
}

func TestStatusUpdateService_CreateExplicitTypeAndDate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUpdateRepo{}
	svc := NewStatusUpdateService(repo, nil, func() time.Time { return testClock })

	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	author := &domain.Member{ID: "m1", Name: "Sarah Connor"}
	update, err := svc.Create(ctx, author, StatusUpdateInput{
		Title:   "February outlook",
		Type:    domain.UpdateTypeMonthly,
		Date:    date,
		Content: "Planning ahead.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateTypeMonthly, update.Type)
	assert.Equal(t, date, update.Date)
}

func TestStatusUpdateService_CreateRequiresTitleAndContent(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUpdateRepo{}
	svc := NewStatusUpdateService(repo, nil, func() time.Time { return testClock })

	author := &domain.Member{ID: "m1", Name: "Sarah Connor"}
	for _, input := range []StatusUpdateInput{
		{Title: "", Content: "body"},
		{Title: "title", Content: "   "},
	} {
		_, err := svc.Create(ctx, author, input)
		require.Error(t, err)
	}
	assert.Empty(t, repo.updates, "an invalid buffer leaves no state behind")
}

func TestStatusUpdateService_CreateRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUpdateRepo{}
	svc := NewStatusUpdateService(repo, nil, func() time.Time { return testClock })

	author := &domain.Member{ID: "m1", Name: "Sarah Connor"}
	_, err := svc.Create(ctx, author, StatusUpdateInput{
		Title:   "title",
		Type:    domain.UpdateType("Quarterly"),
		Content: "body",
	})
	require.Error(t, err)
	assert.Empty(t, repo.updates)
}
