package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"go-campus-events/internal/model"
	"go-campus-events/internal/permission"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestRoleService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserRoleService(newFakeUserRoleRepo())

	role, err := svc.Create(ctx, &CreateRoleRequest{Name: "Auditor", Bitmask: int64p(4)})
	require.NoError(t, err)
	assert.Equal(t, permission.ViewAttendance, role.Bitmask)

	_, err = svc.Create(ctx, &CreateRoleRequest{Name: "Auditor", Bitmask: int64p(1)})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	updated, err := svc.Update(ctx, role.ID, &UpdateRoleRequest{Bitmask: int64p(4 | 64)})
	require.NoError(t, err)
	assert.Equal(t, "Auditor", updated.Name)
	assert.Equal(t, permission.ViewAttendance|permission.ViewEvents, updated.Bitmask)

	require.NoError(t, svc.Delete(ctx, role.ID))
	_, err = svc.Get(ctx, role.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoleService_BitmaskRange(t *testing.T) {
	ctx := context.Background()
	svc := NewEventRoleService(newFakeEventRoleRepo())

	for _, bad := range []*int64{nil, int64p(-1), int64p(1 << 32)} {
		_, err := svc.Create(ctx, &CreateRoleRequest{Name: "X", Bitmask: bad})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}

	role, err := svc.Create(ctx, &CreateRoleRequest{Name: "Max", Bitmask: int64p(1<<32 - 1)})
	require.NoError(t, err)
	assert.Equal(t, permission.EventMask(1<<32-1), role.Bitmask)

	role, err = svc.Create(ctx, &CreateRoleRequest{Name: "Zero", Bitmask: int64p(0)})
	require.NoError(t, err)
	assert.Zero(t, role.Bitmask)
}

func TestRoleService_PermissionNames(t *testing.T) {
	ctx := context.Background()
	users := NewUserRoleService(newFakeUserRoleRepo())
	events := NewEventRoleService(newFakeEventRoleRepo())

	role, err := users.Create(ctx, &CreateRoleRequest{Name: "Moderator", Permissions: []string{"MANAGE_USERS", "SEND_NOTIFICATIONS"}})
	require.NoError(t, err)
	assert.Equal(t, permission.ManageUsers|permission.SendNotifications, role.Bitmask)

	updated, err := users.Update(ctx, role.ID, &UpdateRoleRequest{Permissions: []string{"VIEW_EVENTS"}})
	require.NoError(t, err)
	assert.Equal(t, permission.ViewEvents, updated.Bitmask)

	eventRole, err := events.Create(ctx, &CreateRoleRequest{Name: "Door", Permissions: []string{"EVENT_MARK_ATTENDANCE"}})
	require.NoError(t, err)
	assert.Equal(t, permission.EventMarkAttendance, eventRole.Bitmask)

	cases := map[string]*CreateRoleRequest{
		"wrong scope":  {Name: "A", Permissions: []string{"CREATE_EVENT"}},
		"unknown name": {Name: "B", Permissions: []string{"FLY"}},
		"both forms":   {Name: "C", Bitmask: int64p(1), Permissions: []string{"EVENT_MODIFY_EVENT"}},
	}
	for name, req := range cases {
		_, err := events.Create(ctx, req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, name)
		assert.Equal(t, "permissions", verr.Errors[0].FailedField, name)
	}

	_, err = users.Update(ctx, role.ID, &UpdateRoleRequest{Permissions: []string{"EVENT_DELETE_EVENT"}})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateRoleRequest_DecodesJSONNumber(t *testing.T) {
	var req CreateRoleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","bitmask":63}`), &req))
	require.NotNil(t, req.Bitmask)
	assert.EqualValues(t, 63, *req.Bitmask)
}

func TestAssignmentService(t *testing.T) {
	ctx := context.Background()
	userRoles, eventRoles := newFakeUserRoleRepo(), newFakeEventRoleRepo()
	require.NoError(t, userRoles.SeedDefaults(ctx, model.DefaultUserRoles))
	require.NoError(t, eventRoles.SeedDefaults(ctx, model.DefaultEventRoles))
	userAssign := newFakeUserAssignments(userRoles)
	eventAssign := newFakeEventAssignments(eventRoles)
	event := &model.Event{Name: "Fest"}
	svc := NewAssignmentService(userAssign, eventAssign, newFakeEventRepo(event), eventRoles)
	uid := uuid.New()

	a, err := svc.AssignUserRole(ctx, &UserRoleAssignmentRequest{UserID: uid, RoleID: 1})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, a.Role.Name)
	_, err = svc.AssignUserRole(ctx, &UserRoleAssignmentRequest{UserID: uid, RoleID: 1})
	require.NoError(t, err, "re-assigning is a no-op")

	require.NoError(t, svc.RemoveUserRole(ctx, &UserRoleAssignmentRequest{UserID: uid, RoleID: 1}))
	assert.ErrorIs(t, svc.RemoveUserRole(ctx, &UserRoleAssignmentRequest{UserID: uid, RoleID: 1}), repository.ErrNotFound)

	_, err = svc.AssignEventRole(ctx, &EventRoleAssignmentRequest{UserID: uid, EventID: event.ID, RoleID: 99})
	assert.ErrorIs(t, err, repository.ErrReference)

	require.NoError(t, svc.ReplaceEventRoles(ctx, event.ID, &ReplaceEventRolesRequest{UserID: uid, RoleIDs: []uint{2, 3}}))
	roles, err := eventAssign.ListAssignedRoles(ctx, uid, event.ID)
	require.NoError(t, err)
	assert.Equal(t, permission.EventMask(15), permission.Aggregate[permission.EventMask](roles))

	err = svc.ReplaceEventRoles(ctx, event.ID, &ReplaceEventRolesRequest{UserID: uid, RoleIDs: []uint{42}})
	assert.ErrorIs(t, err, repository.ErrReference)
	err = svc.ReplaceEventRoles(ctx, uuid.New(), &ReplaceEventRolesRequest{UserID: uid, RoleIDs: []uint{1}})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSeeder(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	userRoles, eventRoles := newFakeUserRoleRepo(), newFakeEventRoleRepo()
	assign := newFakeUserAssignments(userRoles)
	seeder := NewSeeder(users, userRoles, eventRoles, assign, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, seeder.Seed(ctx))

	boss, err := users.FindByKmail(ctx, BossKmail)
	require.NoError(t, err)
	assert.Equal(t, BossKid, boss.Kid)
	assert.Equal(t, model.UserKindBoss, boss.Kind)

	held, err := assign.ListAssignedRoles(ctx, boss.ID)
	require.NoError(t, err)
	assert.Len(t, held, 3)
	assert.True(t, permission.IsAuthorized(held, permission.ManagePermissions|permission.ManageUsers))

	// A customised default survives a reseed but not a reset.
	admin, err := userRoles.FindByName(ctx, model.RoleAdmin)
	require.NoError(t, err)
	admin.Bitmask = 1
	require.NoError(t, userRoles.Update(ctx, admin))

	require.NoError(t, seeder.Seed(ctx))
	admin, _ = userRoles.FindByName(ctx, model.RoleAdmin)
	assert.Equal(t, permission.UserMask(1), admin.Bitmask)
	assert.Len(t, users.users, 1)

	require.NoError(t, seeder.ResetDefaults(ctx))
	admin, _ = userRoles.FindByName(ctx, model.RoleAdmin)
	assert.Equal(t, permission.UserMask(63), admin.Bitmask)

	viewer, err := eventRoles.FindByName(ctx, model.RoleEventViewer)
	require.NoError(t, err)
	assert.Equal(t, permission.EventMask(9), viewer.Bitmask)
}
