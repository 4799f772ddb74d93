package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/auth"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/service"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// StatusUpdatesHandler manages authored progress reports.
type StatusUpdatesHandler struct {
	updates *service.StatusUpdateService
}

// NewStatusUpdatesHandler constructs handler.
func NewStatusUpdatesHandler(updateService *service.StatusUpdateService) *StatusUpdatesHandler {
	return &StatusUpdatesHandler{updates: updateService}
}

// Create POST /status-updates.
func (h *StatusUpdatesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return apperrors.NewUnauthorized("member required")
	}

	var req dto.CreateStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update, err := h.updates.Create(c.Context(), principal.Member, service.StatusUpdateInput{
		Title:   req.Title,
		Type:    domain.UpdateType(req.Type),
		Date:    req.Date,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": statusUpdateSummary(update)})
}

// List GET /status-updates.
func (h *StatusUpdatesHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	updates, err := h.updates.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.StatusUpdateSummary, 0, len(updates))
	for i := range updates {
		items = append(items, statusUpdateSummary(&updates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func statusUpdateSummary(update *domain.StatusUpdate) dto.StatusUpdateSummary {
	return dto.StatusUpdateSummary{
		ID:         update.ID,
		Title:      update.Title,
		Date:       update.Date,
		Type:       string(update.Type),
		Content:    update.Content,
		AuthorID:   update.AuthorID,
		AuthorName: update.AuthorName,
		CreatedAt:  update.CreatedAt,
	}
}
