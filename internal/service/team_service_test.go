package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

func newTeamService(members *fakeMemberRepo, tasks *fakeTaskRepo, gate *fakeGate, dispatcher *recordingDispatcher) *TeamService {
	deps := TeamDependencies{
		MemberRepo: members,
		TaskRepo:   tasks,
		Gate:       gate,
	}
	// assign only a non-nil pointer, so the interface stays nil otherwise
	if dispatcher != nil {
		deps.Dispatcher = dispatcher
	}
	return NewTeamService(deps)
}

func adminActor() events.Actor {
	return events.Actor{MemberID: "admin-1", Role: domain.RoleAdmin}
}

func TestTeamService_Invite(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo()
	dispatcher := &recordingDispatcher{}
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), dispatcher)

	member, token, err := svc.Invite(ctx, adminActor(), InviteInput{
		Name:     "Sarah Connor",
		Email:    "sarah@example.com",
		JobTitle: "Engineer",
	})
	require.NoError(t, err)
	require.NotNil(t, member)

	assert.NotEmpty(t, member.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Sarah Connor", member.Name)
	assert.Equal(t, "sarah@example.com", member.Alias)
	assert.Equal(t, domain.RoleMember, member.Role, "role defaults to Member when unset")
	assert.Equal(t, domain.MemberStatusInvited, member.Status)
	assert.NotEmpty(t, member.AvatarURL, "a generated avatar is assigned when none was chosen")

	assert.Equal(t, 1, members.creates)
	require.Len(t, dispatcher.byType(events.EventMemberInvited), 1)
}

func TestTeamService_InviteKeepsChosenAvatar(t *testing.T) {
	ctx := context.Background()
	svc := newTeamService(newFakeMemberRepo(), newFakeTaskRepo(), newFakeGate(), nil)

	member, _, err := svc.Invite(ctx, adminActor(), InviteInput{
		Name:      "Kyle Reese",
		Email:     "kyle@example.com",
		AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix", member.AvatarURL)
}

func TestTeamService_InviteRejectsMalformedEmail(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo()
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, _, err := svc.Invite(ctx, adminActor(), InviteInput{
		Name:  "Sarah Connor",
		Email: "not-an-email",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Please enter a valid email address", domainErr.Message)
	assert.Equal(t, 0, members.creates, "a rejected draft must not touch the store")
}

func TestTeamService_InviteRequiresNameAndEmail(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo()
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	for _, input := range []InviteInput{
		{Name: "", Email: "sarah@example.com"},
		{Name: "Sarah Connor", Email: ""},
		{Name: "   ", Email: "   "},
	} {
		_, _, err := svc.Invite(ctx, adminActor(), input)
		require.Error(t, err)
	}
	assert.Equal(t, 0, members.creates)
}

func TestTeamService_InviteRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	existing := &domain.Member{ID: "m1", Name: "Sarah Connor", Alias: "sarah@example.com"}
	members := newFakeMemberRepo(existing)
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, _, err := svc.Invite(ctx, adminActor(), InviteInput{
		Name:  "Other Sarah",
		Email: "sarah@example.com",
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, 0, members.creates)
}

func TestTeamService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{
		ID:    "m1",
		Name:  "Sarah Connor",
		Alias: "sarah@example.com",
	})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	member, err := svc.UpdateProfile(ctx, adminActor(), "m1", ProfileEdit{
		Name:     "Sarah J. Connor",
		JobTitle: "Tech Lead",
		Alias:    "sarah@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sarah J. Connor", member.Name)
	assert.Equal(t, "Tech Lead", member.JobTitle)
	assert.Equal(t, 1, members.updates)
}

func TestTeamService_UpdateProfileRejectsEmptyAlias(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{
		ID:    "m1",
		Name:  "Sarah Connor",
		Alias: "sarah@example.com",
	})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, err := svc.UpdateProfile(ctx, adminActor(), "m1", ProfileEdit{Name: "Sarah Connor", Alias: "  "})
	require.Error(t, err)
	assert.Equal(t, 0, members.updates, "an invalid buffer leaves the record untouched")

	stored, err := members.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "sarah@example.com", stored.Alias)
}

func TestTeamService_UpdateProfileAcceptsNonEmailAlias(t *testing.T) {
	// The email format check applies at invite time only.
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah Connor", Alias: "sarah@example.com"})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	member, err := svc.UpdateProfile(ctx, adminActor(), "m1", ProfileEdit{Name: "Sarah Connor", Alias: "sconnor"})
	require.NoError(t, err)
	assert.Equal(t, "sconnor", member.Alias)
}

func TestTeamService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah", Alias: "s@e.com", Role: domain.RoleMember})
	dispatcher := &recordingDispatcher{}
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), dispatcher)

	member, err := svc.ChangeRole(ctx, adminActor(), "m1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, member.Role)

	published := dispatcher.byType(events.EventMemberRoleChanged)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.MemberRoleChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.RoleMember, payload.OldRole)
	assert.Equal(t, domain.RoleAdmin, payload.NewRole)
}

func TestTeamService_ChangeRoleSameRoleIsNoOp(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah", Alias: "s@e.com", Role: domain.RoleMember})
	dispatcher := &recordingDispatcher{}
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), dispatcher)

	_, err := svc.ChangeRole(ctx, adminActor(), "m1", domain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, 0, members.updates)
	assert.Empty(t, dispatcher.byType(events.EventMemberRoleChanged))
}

func TestTeamService_ChangeRoleRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah", Alias: "s@e.com", Role: domain.RoleMember})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, err := svc.ChangeRole(ctx, adminActor(), "m1", domain.Role("OWNER"))
	require.Error(t, err)
	assert.Equal(t, 0, members.updates)
}

func TestTeamService_ChangeAvatarFromUpload(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah", Alias: "s@e.com"})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	member, err := svc.ChangeAvatar(ctx, adminActor(), "m1", AvatarSource{
		MimeType: "image/png",
		Data:     []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	assert.Contains(t, member.AvatarURL, "data:image/png;base64,")
}

func TestTeamService_ChangeAvatarRejectsUnsupportedScheme(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah", Alias: "s@e.com"})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, err := svc.ChangeAvatar(ctx, adminActor(), "m1", AvatarSource{URL: "javascript:alert(1)"})
	require.Error(t, err)
	assert.Equal(t, 0, members.updates)
}

func TestTeamService_InviteRejectsUnsupportedAvatarSource(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo()
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, _, err := svc.Invite(ctx, adminActor(), InviteInput{
		Name:      "Kyle Reese",
		Email:     "kyle@example.com",
		AvatarURL: "javascript:alert(1)",
	})
	require.Error(t, err)
	assert.Equal(t, 0, members.creates)
}

func TestTeamService_ChangeAvatarRejectsUnsupportedUpload(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah", Alias: "s@e.com"})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	_, err := svc.ChangeAvatar(ctx, adminActor(), "m1", AvatarSource{
		MimeType: "application/pdf",
		Data:     []byte("nope"),
	})
	require.Error(t, err)
	assert.Equal(t, 0, members.updates)
}

func TestTeamService_RemovalFlow(t *testing.T) {
	ctx := context.Background()
	memberID := "m1"
	assignee := memberID
	members := newFakeMemberRepo(&domain.Member{ID: memberID, Name: "Sarah Connor", Alias: "s@e.com"})
	tasks := newFakeTaskRepo(&domain.Task{ID: "t1", Title: "Fix build", AssigneeID: &assignee})
	gate := newFakeGate()
	dispatcher := &recordingDispatcher{}
	svc := newTeamService(members, tasks, gate, dispatcher)

	challenge, err := svc.RequestRemoval(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "Remove Member", challenge.Title)
	assert.Contains(t, challenge.Message, "Sarah Connor")
	assert.Contains(t, challenge.Message, "cannot be undone")
	assert.True(t, challenge.Dangerous)
	assert.Equal(t, 0, members.deletes, "requesting removal must not delete anything")

	err = svc.Remove(ctx, adminActor(), memberID, challenge.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, members.deletes)
	assert.Equal(t, []string{memberID}, tasks.clearedFor, "assigned tasks are unlinked before deletion")

	task, err := tasks.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, task.AssigneeID)

	require.Len(t, dispatcher.byType(events.EventMemberRemoved), 1)
}

func TestTeamService_RemoveWithoutConfirmation(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(&domain.Member{ID: "m1", Name: "Sarah Connor", Alias: "s@e.com"})
	svc := newTeamService(members, newFakeTaskRepo(), newFakeGate(), nil)

	err := svc.Remove(ctx, adminActor(), "m1", "")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFIRMATION_REQUIRED", domainErr.Code)
	assert.Equal(t, 0, members.deletes)
}

func TestTeamService_RemoveTokenIsSingleUse(t *testing.T) {
	ctx := context.Background()
	members := newFakeMemberRepo(
		&domain.Member{ID: "m1", Name: "Sarah Connor", Alias: "s@e.com"},
	)
	gate := newFakeGate()
	svc := newTeamService(members, newFakeTaskRepo(), gate, nil)

	challenge, err := svc.RequestRemoval(ctx, "m1")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, adminActor(), "m1", challenge.Token))

	err = svc.Remove(ctx, adminActor(), "m1", challenge.Token)
	require.Error(t, err, "a burned token must not authorize a second removal")
}

func TestFilterMembers(t *testing.T) {
	members := []domain.Member{
		{ID: "m1", Name: "Sarah Connor", Alias: "sarah@example.com"},
		{ID: "m2", Name: "Kyle Reese", Alias: "kyle@example.com"},
		{ID: "m3", Name: "Miles Dyson", Alias: "sardine@example.com"},
	}

	matched := FilterMembers(members, "sar")
	require.Len(t, matched, 2, "substring matches on name or alias")
	assert.Equal(t, "m1", matched[0].ID)
	assert.Equal(t, "m3", matched[1].ID)

	assert.Len(t, FilterMembers(members, ""), 3)
	assert.Len(t, FilterMembers(members, "  SARAH  "), 1)
	assert.Empty(t, FilterMembers(members, "zzz"))
}
