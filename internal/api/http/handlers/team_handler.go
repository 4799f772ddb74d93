package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/dto"
	"github.com/spec-kit/project-board/internal/auth"
	"github.com/spec-kit/project-board/internal/avatar"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/service"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// TeamHandler manages team member administration endpoints.
type TeamHandler struct {
	team *service.TeamService
}

// NewTeamHandler constructs handler.
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{team: teamService}
}

// List GET /team/members?search=.
func (h *TeamHandler) List(c *fiber.Ctx) error {
	members, err := h.team.List(c.Context(), c.Query("search"))
	if err != nil {
		return err
	}
	items := make([]dto.MemberSummary, 0, len(members))
	for i := range members {
		items = append(items, memberSummary(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AvatarPresets GET /team/avatar-presets.
func (h *TeamHandler) AvatarPresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": avatar.Presets})
}

// Invite POST /team/members.
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var req dto.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, inviteToken, err := h.team.Invite(c.Context(), actorFromContext(c), service.InviteInput{
		Name:      req.Name,
		Email:     req.Email,
		JobTitle:  req.JobTitle,
		Role:      domain.Role(req.Role),
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"member":       memberSummary(member),
		"invite_token": inviteToken,
	}})
}

// UpdateProfile PUT /team/members/:id.
func (h *TeamHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.team.UpdateProfile(c.Context(), actorFromContext(c), c.Params("id"), service.ProfileEdit{
		Name:     req.Name,
		JobTitle: req.JobTitle,
		Alias:    req.Alias,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberSummary(member)})
}

// ChangeRole PATCH /team/members/:id/role.
func (h *TeamHandler) ChangeRole(c *fiber.Ctx) error {
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.team.ChangeRole(c.Context(), actorFromContext(c), c.Params("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberSummary(member)})
}

// ChangeAvatar PUT /team/members/:id/avatar.
func (h *TeamHandler) ChangeAvatar(c *fiber.Ctx) error {
	var req dto.ChangeAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.team.ChangeAvatar(c.Context(), actorFromContext(c), c.Params("id"), service.AvatarSource{
		URL:      req.URL,
		MimeType: req.MimeType,
		Data:     req.Data,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberSummary(member)})
}

// RequestRemoval POST /team/members/:id/removal.
func (h *TeamHandler) RequestRemoval(c *fiber.Ctx) error {
	challenge, err := h.team.RequestRemoval(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": challenge})
}

// Remove DELETE /team/members/:id. The body is optional; without a confirm
// token the service answers with a confirmation requirement.
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	var req dto.RemoveMemberRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	if err := h.team.Remove(c.Context(), actorFromContext(c), c.Params("id"), req.ConfirmToken); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func memberSummary(member *domain.Member) dto.MemberSummary {
	return dto.MemberSummary{
		ID:        member.ID,
		Name:      member.Name,
		Alias:     member.Alias,
		JobTitle:  member.JobTitle,
		Role:      string(member.Role),
		AvatarURL: member.AvatarURL,
		Status:    string(member.Status),
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Member != nil {
		return events.Actor{MemberID: principal.Member.ID, Role: principal.Member.Role}
	}
	return events.Actor{}
}
