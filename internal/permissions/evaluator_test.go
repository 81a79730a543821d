package permissions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewards_admin/internal/models"
)

var allActions = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionExport}

func TestUnauthenticatedDeniesEverything(t *testing.T) {
	id := Unauthenticated()

	routes := []string{RouteDashboard, RouteRules, RouteAdminUsers, "/not-a-real-route", ""}
	for _, route := range routes {
		for _, action := range allActions {
			assert.False(t, id.Has(route, action), "route=%q action=%q", route, action)
		}
		assert.False(t, id.CanViewPage(route))
		assert.False(t, id.CanCreate(route))
		assert.False(t, id.CanEdit(route))
		assert.False(t, id.CanDelete(route))
		assert.False(t, id.CanExport(route))
	}

	assert.False(t, id.Authenticated())
	assert.False(t, id.IsAdmin())
	assert.Empty(t, id.Permissions())
}

func TestNilUserIsUnauthenticated(t *testing.T) {
	id := IdentityOf(nil)
	assert.False(t, id.Authenticated())
	assert.False(t, id.Has(RouteRules, ActionView))
}

func TestSuperAdminBypassesPermissionList(t *testing.T) {
	// Empty permission list on purpose: the bypass is by role identity,
	// so a corrupted list cannot lock out a super admin.
	user := &models.AdminUser{ID: "u1", Role: models.RoleSuperAdmin, Permissions: nil}
	id := IdentityOf(user)

	routes := []string{RouteRules, RouteAdminUsers, "/not-in-the-catalog", ""}
	for _, route := range routes {
		for _, action := range allActions {
			assert.True(t, id.Has(route, action), "route=%q action=%q", route, action)
		}
	}

	assert.True(t, id.IsSuperAdmin())
	assert.True(t, id.IsAdmin())
	assert.True(t, id.Authenticated())
}

func TestScopedExactRouteMatch(t *testing.T) {
	perms := []models.Permission{
		{ID: "p1", Route: RouteRules, CanView: true, CanCreate: true},
	}
	id := Scoped(models.RoleAdmin, perms)

	assert.True(t, id.Has(RouteRules, ActionView))
	assert.True(t, id.Has(RouteRules, ActionCreate))
	assert.False(t, id.Has(RouteRules, ActionDelete))

	// No prefix or hierarchical matching.
	assert.False(t, id.Has(RouteRules+"/extra", ActionView))
	assert.False(t, id.Has(RouteDashboard, ActionView))
	assert.False(t, id.Has("/not-a-real-route", ActionView))
}

func TestScopedUnknownActionDenied(t *testing.T) {
	perms := []models.Permission{
		{ID: "p1", Route: RouteRules, CanView: true, CanCreate: true, CanEdit: true, CanDelete: true},
	}
	id := Scoped(models.RoleAdmin, perms)

	assert.False(t, id.Has(RouteRules, Action("frobnicate")))
	assert.False(t, Action("frobnicate").Valid())
	assert.True(t, ActionExport.Valid())
}

func TestViewerRoleDeniesAllMutations(t *testing.T) {
	id := Scoped(models.RoleViewer, generateForRole(models.RoleViewer))

	templated := map[string]bool{}
	for _, p := range generateForRole(models.RoleViewer) {
		templated[p.Route] = true
	}

	for _, entry := range MenuStructure() {
		assert.False(t, id.Has(entry.Path, ActionCreate), "create on %s", entry.Path)
		assert.False(t, id.Has(entry.Path, ActionEdit), "edit on %s", entry.Path)
		assert.False(t, id.Has(entry.Path, ActionDelete), "delete on %s", entry.Path)
		assert.False(t, id.Has(entry.Path, ActionExport), "export on %s", entry.Path)

		assert.Equal(t, templated[entry.Path], id.Has(entry.Path, ActionView), "view on %s", entry.Path)
	}

	// Modules absent from the template are fully denied.
	assert.False(t, id.Has(RouteAdminUsers, ActionView))
	assert.False(t, id.Has(RouteVariables, ActionView))
	assert.False(t, id.Has(RouteAdminLogs, ActionView))
}

func TestMissingCanExportFieldReadsAsDeny(t *testing.T) {
	// A record written before the export flag existed has no canExport
	// key at all. It must evaluate to deny, not blow up.
	raw := `[{"id":"p1","module":"dashboard","page":"Rules","menuItem":"Rules",` +
		`"route":"/dashboard/rules","canView":true,"canCreate":true,"canEdit":true,"canDelete":true}]`

	var perms models.PermissionList
	require.NoError(t, json.Unmarshal([]byte(raw), &perms))
	require.Len(t, perms, 1)
	require.Nil(t, perms[0].CanExport)

	id := Scoped(models.RoleAdmin, perms)
	assert.False(t, id.Has(RouteRules, ActionExport))
	assert.True(t, id.Has(RouteRules, ActionView))
}

func TestIsAdminByRole(t *testing.T) {
	cases := []struct {
		role models.Role
		want bool
	}{
		{models.RoleSuperAdmin, true},
		{models.RoleAdmin, true},
		{models.RoleModerator, false},
		{models.RoleViewer, false},
	}
	for _, tc := range cases {
		id := IdentityOf(&models.AdminUser{ID: "u", Role: tc.role})
		assert.Equal(t, tc.want, id.IsAdmin(), "role %s", tc.role)
	}
}

func TestSuperAdminPermissionsAreInformational(t *testing.T) {
	perms := models.PermissionList{{ID: "p1", Route: RouteRules, CanView: false}}
	id := IdentityOf(&models.AdminUser{ID: "u", Role: models.RoleSuperAdmin, Permissions: perms})

	// The stored list says deny, but checks never consult it.
	assert.True(t, id.Has(RouteRules, ActionView))
	assert.Len(t, id.Permissions(), 1)
}
