package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
)

func TestMeHandlerReturnsVisibleMenu(t *testing.T) {
	gin.SetMode(gin.TestMode)

	user := &models.AdminUser{
		ID:       "u1",
		Name:     "Ana Costa",
		Email:    "ana@example.com",
		Role:     models.RoleViewer,
		IsActive: true,
		Permissions: models.PermissionList{
			{ID: "p1", Route: permissions.RouteDashboard, CanView: true},
			{ID: "p2", Route: permissions.RouteRules, CanView: true},
		},
	}

	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		auth.SetCurrentUser(c, user)
	}, MeHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Permissions []models.Permission     `json:"permissions"`
		Menu        []permissions.MenuEntry `json:"menu"`
		IsAdmin     bool                    `json:"isAdmin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "ana@example.com", body.User.Email)
	assert.Equal(t, "viewer", body.User.Role)
	assert.Len(t, body.Permissions, 2)
	assert.False(t, body.IsAdmin)

	// Only the two viewable modules show up in the menu.
	require.Len(t, body.Menu, 2)
	assert.Equal(t, permissions.RouteDashboard, body.Menu[0].Path)
	assert.Equal(t, permissions.RouteRules, body.Menu[1].Path)
}

func TestMeHandlerWithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", MeHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
