package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/project-board/internal/avatar"
	"github.com/spec-kit/project-board/internal/confirm"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/repository"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// emailPattern is the invite-time format check. Profile edits deliberately
// do not re-apply it; they only require a non-empty alias.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const invalidEmailMessage = "Please enter a valid email address"

const removalAction = "member_removal"

// ConfirmGate is the confirmation dependency of the team service; it is
// satisfied by confirm.Gate.
type ConfirmGate interface {
	Issue(ctx context.Context, action, targetID, title, message string, dangerous bool) (*confirm.Challenge, error)
	Consume(ctx context.Context, action, targetID, token string) error
}

// TeamService coordinates team member administration: invites, profile
// edits, role changes, avatar changes, and confirmed removal.
type TeamService struct {
	members    repository.MemberRepository
	tasks      repository.TaskRepository
	gate       ConfirmGate
	invites    *redis.Client
	inviteTTL  time.Duration
	dispatcher events.Dispatcher
}

// TeamDependencies bundles requirements for the team service.
type TeamDependencies struct {
	MemberRepo repository.MemberRepository
	TaskRepo   repository.TaskRepository
	Gate       ConfirmGate
	Invites    *redis.Client
	InviteTTL  time.Duration
	Dispatcher events.Dispatcher
}

// NewTeamService constructs the service.
func NewTeamService(deps TeamDependencies) *TeamService {
	return &TeamService{
		members:    deps.MemberRepo,
		tasks:      deps.TaskRepo,
		gate:       deps.Gate,
		invites:    deps.Invites,
		inviteTTL:  deps.InviteTTL,
		dispatcher: deps.Dispatcher,
	}
}

// InviteInput is the invite draft.
type InviteInput struct {
	Name      string
	Email     string
	JobTitle  string
	Role      domain.Role
	AvatarURL string
}

// ProfileEdit is the edit-in-place buffer for an existing member.
type ProfileEdit struct {
	Name     string
	JobTitle string
	Alias    string
}

// Invite validates the draft and creates a member. The email must be
// non-empty and well formed; the alias field stores it. When no avatar was
// chosen the generated initials fallback is used, so AvatarURL is always
// non-empty afterwards. An invite token is stored for later activation.
func (s *TeamService) Invite(ctx context.Context, actor events.Actor, input InviteInput) (*domain.Member, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, "", apperrors.NewValidationError("name and email required", nil)
	}
	if !emailPattern.MatchString(email) {
		return nil, "", apperrors.NewValidationError(invalidEmailMessage, map[string]any{"field": "email"})
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	if !role.Valid() {
		return nil, "", apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role), map[string]any{"field": "role"})
	}
	if input.AvatarURL != "" && !avatar.ValidSource(input.AvatarURL) {
		return nil, "", apperrors.NewValidationError("unsupported avatar source", map[string]any{"field": "avatar"})
	}

	if _, err := s.members.GetByAlias(ctx, email); err == nil {
		return nil, "", apperrors.NewConflict("email already invited", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, "", err
	}

	member := &domain.Member{
		ID:        uuid.NewString(),
		Name:      name,
		Alias:     email,
		JobTitle:  strings.TrimSpace(input.JobTitle),
		Role:      role,
		AvatarURL: avatar.Resolve(input.AvatarURL, name),
		Status:    domain.MemberStatusInvited,
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, "", err
	}

	token := uuid.NewString()
	if s.invites != nil {
		if err := s.invites.Set(ctx, inviteKey(token), member.ID, s.inviteTTL).Err(); err != nil {
			return nil, "", fmt.Errorf("store invite token: %w", err)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMemberInvited,
		SubjectID: member.ID,
		Actor:     actor,
		Payload: events.MemberInvitedPayload{
			Name:  member.Name,
			Alias: member.Alias,
			Role:  member.Role,
		},
	})

	return member, token, nil
}

// RedeemInvite resolves and burns an invite token, returning the member id
// it was issued for.
func (s *TeamService) RedeemInvite(ctx context.Context, token string) (string, error) {
	if s.invites == nil || token == "" {
		return "", apperrors.NewUnauthorized("invalid invite token")
	}
	memberID, err := s.invites.GetDel(ctx, inviteKey(token)).Result()
	if err == redis.Nil || memberID == "" {
		return "", apperrors.NewUnauthorized("invalid invite token")
	}
	if err != nil {
		return "", err
	}
	return memberID, nil
}

// UpdateProfile applies an edit buffer to a member. Name and alias must be
// non-empty or the buffer is rejected without touching the record. The alias
// format is not re-checked here.
func (s *TeamService) UpdateProfile(ctx context.Context, actor events.Actor, memberID string, edit ProfileEdit) (*domain.Member, error) {
	if strings.TrimSpace(edit.Name) == "" || strings.TrimSpace(edit.Alias) == "" {
		return nil, apperrors.NewValidationError("name and alias required", nil)
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": memberID})
		}
		return nil, err
	}

	member.Name = strings.TrimSpace(edit.Name)
	member.JobTitle = strings.TrimSpace(edit.JobTitle)
	member.Alias = strings.TrimSpace(edit.Alias)

	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMemberUpdated,
		SubjectID: member.ID,
		Actor:     actor,
	})
	return member, nil
}

// ChangeRole applies an immediate role mutation; it is the one mutation not
// routed through a confirmation gate.
func (s *TeamService) ChangeRole(ctx context.Context, actor events.Actor, memberID string, role domain.Role) (*domain.Member, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role), map[string]any{"field": "role"})
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": memberID})
		}
		return nil, err
	}

	oldRole := member.Role
	if oldRole == role {
		return member, nil
	}
	member.Role = role

	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMemberRoleChanged,
		SubjectID: member.ID,
		Actor:     actor,
		Payload: events.MemberRoleChangedPayload{
			OldRole: oldRole,
			NewRole: role,
		},
	})
	return member, nil
}

// AvatarSource describes where a new avatar comes from: either a URL
// (preset or external) or uploaded image bytes.
type AvatarSource struct {
	URL      string
	MimeType string
	Data     []byte
}

// ChangeAvatar updates a member's avatar. Uploads are encoded to a data URL
// and then follow the same path as a plain URL.
func (s *TeamService) ChangeAvatar(ctx context.Context, actor events.Actor, memberID string, source AvatarSource) (*domain.Member, error) {
	url := source.URL
	if len(source.Data) > 0 {
		encoded, err := avatar.EncodeUpload(source.MimeType, source.Data)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"field": "avatar"})
		}
		url = encoded
	}
	if url == "" {
		return nil, apperrors.NewValidationError("avatar url or upload required", nil)
	}
	if !avatar.ValidSource(url) {
		return nil, apperrors.NewValidationError("unsupported avatar source", map[string]any{"field": "avatar"})
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": memberID})
		}
		return nil, err
	}

	member.AvatarURL = url
	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMemberAvatarChanged,
		SubjectID: member.ID,
		Actor:     actor,
	})
	return member, nil
}

// RequestRemoval issues a confirmation challenge describing the target by
// name. Nothing is deleted here.
func (s *TeamService) RequestRemoval(ctx context.Context, memberID string) (*confirm.Challenge, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"id": memberID})
		}
		return nil, err
	}

	message := fmt.Sprintf("Are you sure you want to remove %s from the team? This action cannot be undone.", member.Name)
	return s.gate.Issue(ctx, removalAction, member.ID, "Remove Member", message, true)
}

// Remove deletes a member, but only when a valid confirmation token from a
// prior RequestRemoval is presented. Tasks assigned to the member are
// unlinked so their cards degrade to the placeholder assignee.
func (s *TeamService) Remove(ctx context.Context, actor events.Actor, memberID, confirmToken string) error {
	if err := s.gate.Consume(ctx, removalAction, memberID, confirmToken); err != nil {
		if err == confirm.ErrNotConfirmed {
			return apperrors.NewDomainError("CONFIRMATION_REQUIRED", "removal not confirmed", 409, map[string]any{"member_id": memberID})
		}
		return err
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("member", map[string]any{"id": memberID})
		}
		return err
	}

	if err := s.tasks.ClearAssignee(ctx, memberID); err != nil {
		return err
	}
	if err := s.members.Delete(ctx, memberID); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMemberRemoved,
		SubjectID: memberID,
		Actor:     actor,
		Payload:   events.MemberRemovedPayload{Name: member.Name},
	})
	return nil
}

// List returns members, narrowed by a case-insensitive substring match on
// name or alias when a search term is given.
func (s *TeamService) List(ctx context.Context, search string) ([]domain.Member, error) {
	return s.members.List(ctx, search)
}

// FilterMembers applies the search semantics to an in-memory member slice.
// The repository does the same narrowing in SQL; this keeps derived views
// (board summaries) consistent with it.
func FilterMembers(members []domain.Member, search string) []domain.Member {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return members
	}
	var result []domain.Member
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), term) || strings.Contains(strings.ToLower(m.Alias), term) {
			result = append(result, m)
		}
	}
	return result
}

func (s *TeamService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func inviteKey(token string) string {
	return "invite:" + token
}
