package permissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rewards_admin/internal/models"
)

type fakeDirectory struct {
	users map[string]*models.AdminUser
}

func newFakeDirectory(users ...*models.AdminUser) *fakeDirectory {
	d := &fakeDirectory{users: map[string]*models.AdminUser{}}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *fakeDirectory) FindAdminUser(ctx context.Context, id string) (*models.AdminUser, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (d *fakeDirectory) SaveAdminUser(ctx context.Context, u *models.AdminUser) error {
	d.users[u.ID] = u
	return nil
}

func newTestStore(users ...*models.AdminUser) (*Store, *fakeDirectory) {
	dir := newFakeDirectory(users...)
	return NewStore(dir, zap.NewNop()), dir
}

func TestUpdateThenReadRoundTrip(t *testing.T) {
	store, _ := newTestStore(&models.AdminUser{ID: "u1", Role: models.RoleAdmin})
	ctx := context.Background()

	perms := []models.Permission{
		{ID: "p1", Module: "dashboard", Page: "Rules", MenuItem: "Rules", Route: RouteRules,
			CanView: true, CanCreate: true, CanEdit: true, CanDelete: false, CanExport: boolPtr(true)},
		{ID: "p2", Module: "dashboard", Page: "Variables", MenuItem: "Variables", Route: RouteVariables,
			CanView: true},
	}

	require.NoError(t, store.UpdateUserPermissions(ctx, "u1", perms))

	got := store.UserPermissions(ctx, "u1")
	assert.Equal(t, perms, got)
}

func TestUpdateReplacesWholesale(t *testing.T) {
	store, _ := newTestStore(&models.AdminUser{
		ID:   "u1",
		Role: models.RoleAdmin,
		Permissions: models.PermissionList{
			{ID: "old1", Route: RouteRules, CanView: true},
			{ID: "old2", Route: RouteVariables, CanView: true},
		},
	})
	ctx := context.Background()

	replacement := []models.Permission{{ID: "new1", Route: RouteUsers, CanView: true}}
	require.NoError(t, store.UpdateUserPermissions(ctx, "u1", replacement))

	got := store.UserPermissions(ctx, "u1")
	require.Len(t, got, 1)
	assert.Equal(t, "new1", got[0].ID)

	// Setting an empty list clears all prior permissions.
	require.NoError(t, store.UpdateUserPermissions(ctx, "u1", nil))
	assert.Empty(t, store.UserPermissions(ctx, "u1"))
}

func TestUpdateUnknownUserFails(t *testing.T) {
	store, _ := newTestStore()
	err := store.UpdateUserPermissions(context.Background(), "missing", []models.Permission{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReadUnknownUserYieldsEmptyNotError(t *testing.T) {
	store, _ := newTestStore()
	assert.Empty(t, store.UserPermissions(context.Background(), "missing"))
}

func TestUpdateBumpsModificationTimestamp(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	store, dir := newTestStore(&models.AdminUser{ID: "u1", Role: models.RoleAdmin, UpdatedAt: created})

	later := created.Add(48 * time.Hour)
	store.now = func() time.Time { return later }

	require.NoError(t, store.UpdateUserPermissions(context.Background(), "u1", nil))
	assert.Equal(t, later, dir.users["u1"].UpdatedAt)
}

func TestUpdateNormalizesViewlessRecords(t *testing.T) {
	store, _ := newTestStore(&models.AdminUser{ID: "u1", Role: models.RoleAdmin})
	ctx := context.Background()

	inconsistent := []models.Permission{
		{ID: "p1", Route: RouteRules, CanView: false,
			CanCreate: true, CanEdit: true, CanDelete: true, CanExport: boolPtr(true)},
	}
	require.NoError(t, store.UpdateUserPermissions(ctx, "u1", inconsistent))

	got := store.UserPermissions(ctx, "u1")
	require.Len(t, got, 1)
	assert.False(t, got[0].CanView)
	assert.False(t, got[0].CanCreate)
	assert.False(t, got[0].CanEdit)
	assert.False(t, got[0].CanDelete)
	assert.False(t, got[0].ExportAllowed())
}

func TestUpdateVisibleToNextCheck(t *testing.T) {
	store, dir := newTestStore(&models.AdminUser{ID: "u1", Role: models.RoleViewer})
	ctx := context.Background()

	require.NoError(t, store.UpdateUserPermissions(ctx, "u1",
		[]models.Permission{{ID: "p1", Route: RouteRules, CanView: true, CanCreate: true}}))

	// The next evaluation of the same user must see the new list; there
	// is no staleness window within a process.
	u, err := dir.FindAdminUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, IdentityOf(u).Has(RouteRules, ActionCreate))
}

func TestResetToRoleDefaults(t *testing.T) {
	store, dir := newTestStore(&models.AdminUser{
		ID:          "u1",
		Role:        models.RoleViewer,
		Permissions: models.PermissionList{{ID: "custom", Route: RouteRules, CanView: true, CanCreate: true}},
	})
	ctx := context.Background()

	perms, err := store.ResetToRoleDefaults(ctx, "u1")
	require.NoError(t, err)

	want := generateForRole(models.RoleViewer)
	require.Equal(t, len(want), len(perms))
	for i := range perms {
		assert.Equal(t, want[i].Route, perms[i].Route)
		assert.False(t, perms[i].CanCreate)
	}

	u, err := dir.FindAdminUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.PermissionList(perms), u.Permissions)
}

func TestResetUnknownUserFails(t *testing.T) {
	store, _ := newTestStore()
	_, err := store.ResetToRoleDefaults(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
