package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/repository"
	"github.com/spec-kit/project-board/internal/service"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// TasksHandler manages board task endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: taskService}
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.CreateTask(c.Context(), actorFromContext(c), taskInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": taskDetail(task)})
}

// Update PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.UpdateTask(c.Context(), actorFromContext(c), c.Params("id"), taskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskDetail(task)})
}

// Get GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	task, err := h.tasks.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskDetail(task)})
}

// Delete DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	if err := h.tasks.DeleteTask(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Move POST /tasks/move.
func (h *TasksHandler) Move(c *fiber.Ctx) error {
	var req dto.MoveTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Payload == "" {
		return apperrors.NewValidationError("payload required", nil)
	}

	task, err := h.tasks.MoveTask(c.Context(), actorFromContext(c), req.Payload, domain.TaskStatus(req.Target))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskDetail(task)})
}

// AddComment POST /tasks/:id/comments.
func (h *TasksHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.tasks.AddComment(c.Context(), actorFromContext(c), c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": taskDetail(task)})
}

// ListCards GET /tasks/cards.
func (h *TasksHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.tasks.ListCards(c.Context(), parseTaskQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cards})
}

func parseTaskQuery(c *fiber.Ctx) repository.TaskFilter {
	filter := repository.TaskFilter{}

	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.TaskStatus(strings.TrimSpace(part)))
		}
	}
	if raw := c.Query("priority"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			filter.Priorities = append(filter.Priorities, domain.TaskPriority(strings.TrimSpace(part)))
		}
	}
	if raw := c.Query("type"); raw != "" {
		taskType := domain.TaskType(raw)
		filter.Type = &taskType
	}
	if raw := c.Query("assignee_id"); raw != "" {
		filter.AssigneeID = &raw
	}
	if raw := c.Query("search"); raw != "" {
		filter.SearchTerm = &raw
	}
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Offset = parsed
		}
	}
	return filter
}

func taskInput(req dto.TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:            req.Title,
		Status:           domain.TaskStatus(req.Status),
		CustomStatusText: req.CustomStatusText,
		Priority:         domain.TaskPriority(req.Priority),
		Type:             domain.TaskType(req.Type),
		Tags:             req.Tags,
		AssigneeID:       req.AssigneeID,
		DueDate:          req.DueDate,
		ProjectLinks:     req.ProjectLinks,
		Attributes:       req.Attributes,
		IsMilestone:      req.IsMilestone,
		SubTaskIDs:       req.SubTaskIDs,
	}
}

func taskDetail(task *domain.Task) dto.TaskDetail {
	return dto.TaskDetail{
		ID:               task.ID,
		Title:            task.Title,
		Status:           string(task.Status),
		CustomStatusText: task.CustomStatusText,
		Priority:         string(task.Priority),
		Type:             string(task.Type),
		Tags:             task.Tags,
		AssigneeID:       task.AssigneeID,
		DueDate:          task.DueDate,
		Comments:         task.Comments,
		ProjectLinks:     task.ProjectLinks,
		Attributes:       task.Attributes,
		IsMilestone:      task.IsMilestone,
		SubTaskIDs:       task.SubTaskIDs,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}
