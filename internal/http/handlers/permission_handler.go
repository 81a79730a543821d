package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
)

// GetMenuStructure returns the static module catalog permission editors
// are built from.
func GetMenuStructure(store *permissions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"menu": store.MenuStructure()})
	}
}

// GetRoleTemplates returns the default permission shape of every role.
func GetRoleTemplates(store *permissions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"templates": store.RoleTemplates()})
	}
}

// GetUserPermissions returns the stored permission list of one admin
// user. This reads the target's list directly; it is not an evaluation of
// what the acting user may do.
func GetUserPermissions(store *permissions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms := store.UserPermissions(c.Request.Context(), c.Param("id"))
		if perms == nil {
			perms = []models.Permission{}
		}
		c.JSON(http.StatusOK, gin.H{"permissions": perms})
	}
}

// UpdateUserPermissions replaces a user's permission list wholesale.
func UpdateUserPermissions(store *permissions.Store, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Permissions []models.Permission `json:"permissions"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID := c.Param("id")
		before := store.UserPermissions(c.Request.Context(), userID)

		if err := store.UpdateUserPermissions(c.Request.Context(), userID, in.Permissions); err != nil {
			if errors.Is(err, permissions.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "admin_users.update_permissions", "admin_user", userID,
			"replaced permission list", c.ClientIP(), before, in.Permissions)

		c.JSON(http.StatusOK, gin.H{
			"permissions": store.UserPermissions(c.Request.Context(), userID),
		})
	}
}

// ResetUserPermissions regenerates a user's permissions from their
// current role's template.
func ResetUserPermissions(store *permissions.Store, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		before := store.UserPermissions(c.Request.Context(), userID)

		perms, err := store.ResetToRoleDefaults(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, permissions.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "admin_users.reset_permissions", "admin_user", userID,
			"reset permissions to role defaults", c.ClientIP(), before, perms)

		c.JSON(http.StatusOK, gin.H{"permissions": perms})
	}
}
