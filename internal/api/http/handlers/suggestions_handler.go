package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/service"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// SuggestionsHandler exposes the AI suggestion endpoints. The service layer
// degrades on every failure mode, so these handlers never surface an error
// for the generative call itself.
type SuggestionsHandler struct {
	suggestions *service.SuggestionService
}

// NewSuggestionsHandler constructs handler.
func NewSuggestionsHandler(suggestionService *service.SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{suggestions: suggestionService}
}

// EnhanceDescription POST /suggestions/enhance-description.
func (h *SuggestionsHandler) EnhanceDescription(c *fiber.Ctx) error {
	var req dto.EnhanceDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	description := h.suggestions.EnhanceDescription(c.Context(), req.Title, req.Description)
	return c.JSON(fiber.Map{"data": dto.EnhanceDescriptionResponse{Description: description}})
}

// GenerateSubtasks POST /suggestions/subtasks.
func (h *SuggestionsHandler) GenerateSubtasks(c *fiber.Ctx) error {
	var req dto.GenerateSubtasksRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	subtasks := h.suggestions.GenerateSubtasks(c.Context(), req.Title)
	return c.JSON(fiber.Map{"data": subtasks})
}
