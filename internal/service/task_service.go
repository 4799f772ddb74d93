package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/repository"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// TaskService coordinates board tasks and their derived card views.
type TaskService struct {
	tasks      repository.TaskRepository
	members    repository.MemberRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TaskDependencies bundles requirements for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	MemberRepo repository.MemberRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		tasks:      deps.TaskRepo,
		members:    deps.MemberRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// TaskInput describes task creation and update payloads.
type TaskInput struct {
	Title            string
	Status           domain.TaskStatus
	CustomStatusText string
	Priority         domain.TaskPriority
	Type             domain.TaskType
	Tags             []string
	AssigneeID       *string
	DueDate          time.Time
	ProjectLinks     []domain.ProjectLink
	Attributes       domain.TaskAttributes
	IsMilestone      bool
	SubTaskIDs       []string
}

// CreateTask creates a task. The assignee reference is not validated against
// the member set: an unknown id is a silent miss rendered as a placeholder,
// by the same contract the card view honors.
func (s *TaskService) CreateTask(ctx context.Context, actor events.Actor, input TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	task := &domain.Task{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(input.Title),
		Status:           input.Status,
		CustomStatusText: input.CustomStatusText,
		Priority:         input.Priority,
		Type:             input.Type,
		Tags:             input.Tags,
		AssigneeID:       input.AssigneeID,
		DueDate:          input.DueDate,
		Comments:         []domain.Comment{},
		ProjectLinks:     input.ProjectLinks,
		Attributes:       input.Attributes,
		IsMilestone:      input.IsMilestone,
		SubTaskIDs:       input.SubTaskIDs,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusNotStarted
	}
	if !task.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"field": "status"})
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if task.Type == "" {
		task.Type = domain.TaskTypeTask
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, events.EventTaskCreated, task.ID, actor, nil)
	return task, nil
}

// UpdateTask replaces the mutable fields of a task.
func (s *TaskService) UpdateTask(ctx context.Context, actor events.Actor, taskID string, input TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.Status != "" && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"field": "status"})
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	if input.Status != "" {
		task.Status = input.Status
	}
	task.CustomStatusText = input.CustomStatusText
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.Type != "" {
		task.Type = input.Type
	}
	task.Tags = input.Tags
	task.AssigneeID = input.AssigneeID
	task.DueDate = input.DueDate
	task.ProjectLinks = input.ProjectLinks
	task.Attributes = input.Attributes
	task.IsMilestone = input.IsMilestone
	task.SubTaskIDs = input.SubTaskIDs

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, events.EventTaskUpdated, task.ID, actor, nil)
	return task, nil
}

// MoveTask applies a drop: the drag payload is the task id as plain text,
// the drop target identifies the destination status column.
func (s *TaskService) MoveTask(ctx context.Context, actor events.Actor, dragPayload string, target domain.TaskStatus) (*domain.Task, error) {
	if !target.Valid() {
		return nil, apperrors.NewValidationError("unknown drop target", map[string]any{"field": "status"})
	}

	task, err := s.getTask(ctx, strings.TrimSpace(dragPayload))
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	if oldStatus == target {
		return task, nil
	}
	task.Status = target

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, events.EventTaskMoved, task.ID, actor, events.TaskMovedPayload{
		OldStatus: oldStatus,
		NewStatus: target,
	})
	return task, nil
}

// AddComment appends a discussion entry to a task.
func (s *TaskService) AddComment(ctx context.Context, actor events.Actor, taskID, body string) (*domain.Task, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Comments = append(task.Comments, domain.Comment{
		ID:        uuid.NewString(),
		AuthorID:  actor.MemberID,
		Body:      strings.TrimSpace(body),
		CreatedAt: s.now(),
	})

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publishTaskEvent(ctx, events.EventTaskUpdated, task.ID, actor, nil)
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("task", map[string]any{"id": taskID})
		}
		return err
	}
	return nil
}

// GetTask loads a single task.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.getTask(ctx, taskID)
}

// ListCards returns the derived card view for the filtered task set. The
// member index is rebuilt per call; assignee misses degrade to placeholders
// and are never errors.
func (s *TaskService) ListCards(ctx context.Context, filter repository.TaskFilter) ([]domain.CardSummary, error) {
	tasks, err := s.tasks.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	members, err := s.members.List(ctx, "")
	if err != nil {
		return nil, err
	}
	index := make(map[string]*domain.Member, len(members))
	for i := range members {
		index[members[i].ID] = &members[i]
	}

	now := s.now()
	cards := make([]domain.CardSummary, 0, len(tasks))
	for i := range tasks {
		cards = append(cards, domain.BuildCardSummary(&tasks[i], index, now))
	}
	return cards, nil
}

func (s *TaskService) getTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("task", map[string]any{"id": taskID})
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) publishTaskEvent(ctx context.Context, eventType events.EventType, taskID string, actor events.Actor, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: taskID,
		Actor:     actor,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
