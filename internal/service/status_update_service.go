package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/repository"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// StatusUpdateService handles authored progress reports.
type StatusUpdateService struct {
	updates    repository.StatusUpdateRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewStatusUpdateService constructs the service.
func NewStatusUpdateService(updates repository.StatusUpdateRepository, dispatcher events.Dispatcher, now func() time.Time) *StatusUpdateService {
	if now == nil {
		now = time.Now
	}
	return &StatusUpdateService{updates: updates, dispatcher: dispatcher, now: now}
}

// StatusUpdateInput is the authoring buffer.
type StatusUpdateInput struct {
	Title   string
	Type    domain.UpdateType
	Date    time.Time
	Content string
}

// Create publishes a status update. Title and content are both required;
// an invalid buffer leaves no state behind. The author identity is
// snapshotted from the authenticated member, not trusted from the payload.
func (s *StatusUpdateService) Create(ctx context.Context, author *domain.Member, input StatusUpdateInput) (*domain.StatusUpdate, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.NewValidationError("title and content required", nil)
	}

	updateType := input.Type
	if updateType == "" {
		updateType = domain.UpdateTypeWeekly
	}
	if !updateType.Valid() {
		return nil, apperrors.NewValidationError("unknown update type", map[string]any{"field": "type"})
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	update := &domain.StatusUpdate{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(input.Title),
		Date:       date,
		Type:       updateType,
		Content:    input.Content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
	}

	if err := s.updates.Create(ctx, update); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStatusUpdatePosted,
			SubjectID: update.ID,
			Actor:     events.Actor{MemberID: author.ID, Role: author.Role},
			Timestamp: s.now(),
			Payload: events.StatusUpdatePostedPayload{
				Title:      update.Title,
				Type:       update.Type,
				AuthorName: update.AuthorName,
			},
		})
	}

	return update, nil
}

// List returns recent updates, newest first.
func (s *StatusUpdateService) List(ctx context.Context, limit, offset int) ([]domain.StatusUpdate, error) {
	return s.updates.List(ctx, limit, offset)
}
