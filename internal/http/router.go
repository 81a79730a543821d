package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/auth"
	"rewards_admin/internal/http/handlers"
	"rewards_admin/internal/permissions"
)

// NewRouter wires the admin API. Every dashboard route is gated twice:
// the JWT middleware authenticates, then require() authorizes the
// (route, action) pair against the acting user's permission list.
func NewRouter(db *gorm.DB, jwtSecret string, store *permissions.Store, rec *audit.Recorder) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	r.POST("/api/v1/auth/login", handlers.LoginHandler(db, jwtSecret))
	r.GET("/logout", handlers.LogoutHandler())

	authMW := auth.JWT(db, jwtSecret)

	api := r.Group("/api/v1", authMW)
	{
		// Current user, permissions and visible menu
		api.GET("/auth/me", handlers.MeHandler())

		// Rules
		api.GET("/rules", require(permissions.RouteRules, permissions.ActionView), handlers.ListRules(db))
		api.GET("/rules/export", require(permissions.RouteRules, permissions.ActionExport), handlers.ExportRules(db))
		api.POST("/rules", require(permissions.RouteRules, permissions.ActionCreate), handlers.CreateRule(db, rec))
		api.PUT("/rules/:id", require(permissions.RouteRules, permissions.ActionEdit), handlers.UpdateRule(db, rec))
		api.DELETE("/rules/:id", require(permissions.RouteRules, permissions.ActionDelete), handlers.DeleteRule(db, rec))

		// Conversion rates
		api.GET("/conversion-rates", require(permissions.RouteConversionRates, permissions.ActionView), handlers.ListConversionRates(db))
		api.GET("/conversion-rates/export", require(permissions.RouteConversionRates, permissions.ActionExport), handlers.ExportConversionRates(db))
		api.POST("/conversion-rates", require(permissions.RouteConversionRates, permissions.ActionCreate), handlers.CreateConversionRate(db, rec))
		api.PUT("/conversion-rates/:id", require(permissions.RouteConversionRates, permissions.ActionEdit), handlers.UpdateConversionRate(db, rec))
		api.DELETE("/conversion-rates/:id", require(permissions.RouteConversionRates, permissions.ActionDelete), handlers.DeleteConversionRate(db, rec))

		// Variables
		api.GET("/variables", require(permissions.RouteVariables, permissions.ActionView), handlers.ListVariables(db))
		api.GET("/variables/export", require(permissions.RouteVariables, permissions.ActionExport), handlers.ExportVariables(db))
		api.POST("/variables", require(permissions.RouteVariables, permissions.ActionCreate), handlers.CreateVariable(db, rec))
		api.PUT("/variables/:id", require(permissions.RouteVariables, permissions.ActionEdit), handlers.UpdateVariable(db, rec))
		api.DELETE("/variables/:id", require(permissions.RouteVariables, permissions.ActionDelete), handlers.DeleteVariable(db, rec))

		// Program users (read-only directory)
		api.GET("/users", require(permissions.RouteUsers, permissions.ActionView), handlers.ListProgramUsers(db))
		api.GET("/users/export", require(permissions.RouteUsers, permissions.ActionExport), handlers.ExportProgramUsers(db))

		// Admin users
		api.GET("/admin-users", require(permissions.RouteAdminUsers, permissions.ActionView), handlers.ListAdminUsers(db))
		api.POST("/admin-users", require(permissions.RouteAdminUsers, permissions.ActionCreate), handlers.CreateAdminUser(db, store, rec))
		api.PUT("/admin-users/:id", require(permissions.RouteAdminUsers, permissions.ActionEdit), handlers.UpdateAdminUser(db, rec))
		api.DELETE("/admin-users/:id", require(permissions.RouteAdminUsers, permissions.ActionDelete), handlers.DeleteAdminUser(db, rec))
		api.POST("/admin-users/:id/toggle-status", require(permissions.RouteAdminUsers, permissions.ActionEdit), handlers.ToggleAdminUserStatus(db, rec))

		// Permission management
		api.GET("/admin-users/menu", require(permissions.RouteAdminUsers, permissions.ActionView), handlers.GetMenuStructure(store))
		api.GET("/admin-users/role-templates", require(permissions.RouteAdminUsers, permissions.ActionView), handlers.GetRoleTemplates(store))
		api.GET("/admin-users/:id/permissions", require(permissions.RouteAdminUsers, permissions.ActionView), handlers.GetUserPermissions(store))
		api.PUT("/admin-users/:id/permissions", require(permissions.RouteAdminUsers, permissions.ActionEdit), handlers.UpdateUserPermissions(store, rec))
		api.POST("/admin-users/:id/permissions/reset", require(permissions.RouteAdminUsers, permissions.ActionEdit), handlers.ResetUserPermissions(store, rec))

		// Audit trail
		api.GET("/admin-logs", require(permissions.RouteAdminLogs, permissions.ActionView), handlers.ListAdminLogs(db))
		api.GET("/admin-logs/export", require(permissions.RouteAdminLogs, permissions.ActionExport), handlers.ExportAdminLogs(db))
	}

	return r
}

// require authorizes one (route, action) pair against the acting user's
// identity. Unauthenticated requests and unknown routes both fall through
// to deny.
func require(route string, action permissions.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.CurrentIdentity(c)
		if !id.Has(route, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "forbidden",
				"route":  route,
				"action": string(action),
			})
			return
		}
		c.Next()
	}
}
