package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
)

func probeRouter(user *models.AdminUser, route string, action permissions.Action) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe",
		func(c *gin.Context) {
			if user != nil {
				auth.SetCurrentUser(c, user)
			}
		},
		require(route, action),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r
}

func TestRequireMiddleware(t *testing.T) {
	viewer := &models.AdminUser{
		ID:   "u1",
		Role: models.RoleViewer,
		Permissions: models.PermissionList{
			{ID: "p1", Route: permissions.RouteRules, CanView: true},
		},
	}
	superAdmin := &models.AdminUser{ID: "u2", Role: models.RoleSuperAdmin}

	cases := []struct {
		name       string
		user       *models.AdminUser
		route      string
		action     permissions.Action
		wantStatus int
	}{
		{"no user is denied", nil, permissions.RouteRules, permissions.ActionView, http.StatusForbidden},
		{"viewer may view rules", viewer, permissions.RouteRules, permissions.ActionView, http.StatusOK},
		{"viewer may not create rules", viewer, permissions.RouteRules, permissions.ActionCreate, http.StatusForbidden},
		{"viewer denied on unknown route", viewer, "/not-a-real-route", permissions.ActionView, http.StatusForbidden},
		{"super admin passes any gate", superAdmin, "/not-a-real-route", permissions.ActionDelete, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			probeRouter(tc.user, tc.route, tc.action).ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRequireDenialNamesMissingPermission(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	probeRouter(nil, permissions.RouteVariables, permissions.ActionExport).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), permissions.RouteVariables)
	assert.Contains(t, w.Body.String(), "export")
}
