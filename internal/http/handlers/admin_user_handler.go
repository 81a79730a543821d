package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rewards_admin/internal/audit"
	"rewards_admin/internal/auth"
	"rewards_admin/internal/models"
	"rewards_admin/internal/permissions"
)

// ListAdminUsers returns admin users, optionally filtered by a free-text
// search over name/email, by role, and by active flag.
func ListAdminUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.AdminUser{}).Order("created_at ASC")

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			like := "%" + search + "%"
			query = query.Where("name LIKE ? OR email LIKE ?", like, like)
		}
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		if active := c.Query("is_active"); active != "" {
			query = query.Where("is_active = ?", active == "true")
		}

		var users []models.AdminUser
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// CreateAdminUser inserts a new admin user. When the request carries no
// permission list, one is materialized from the role's template.
func CreateAdminUser(db *gorm.DB, store *permissions.Store, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name        string              `json:"name" binding:"required"`
			Email       string              `json:"email" binding:"required,email"`
			Password    string              `json:"password" binding:"required"`
			Role        models.Role         `json:"role" binding:"required"`
			Avatar      string              `json:"avatar"`
			IsActive    *bool               `json:"isActive"`
			Permissions []models.Permission `json:"permissions"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in.Email = strings.TrimSpace(strings.ToLower(in.Email))
		in.Name = strings.TrimSpace(in.Name)

		if !in.Role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		if len(in.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
			return
		}

		var existing int64
		if err := db.Model(&models.AdminUser{}).Where("email = ?", in.Email).Count(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		perms := in.Permissions
		if len(perms) == 0 {
			perms = store.GenerateForRole(in.Role)
		}

		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}

		user := models.AdminUser{
			ID:           uuid.NewString(),
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: string(hash),
			Role:         in.Role,
			Avatar:       in.Avatar,
			IsActive:     active,
			Permissions:  permissions.Normalize(perms),
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "admin_users.create", "admin_user", user.ID,
			"created admin user "+user.Email, c.ClientIP(), nil, user)

		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// UpdateAdminUser applies a partial update. Changing the role does NOT
// regenerate the permission list; that only happens through the explicit
// reset endpoint.
func UpdateAdminUser(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name     *string      `json:"name"`
			Email    *string      `json:"email"`
			Password *string      `json:"password"`
			Role     *models.Role `json:"role"`
			Avatar   *string      `json:"avatar"`
			IsActive *bool        `json:"isActive"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.AdminUser
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		before := user

		if in.Name != nil {
			user.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			user.Email = strings.TrimSpace(strings.ToLower(*in.Email))
		}
		if in.Role != nil {
			if !in.Role.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
				return
			}
			user.Role = *in.Role
		}
		if in.Avatar != nil {
			user.Avatar = *in.Avatar
		}
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		if in.Password != nil {
			if len(*in.Password) < 8 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
				return
			}
			user.PasswordHash = string(hash)
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "admin_users.update", "admin_user", user.ID,
			"updated admin user "+user.Email, c.ClientIP(), before, user)

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteAdminUser removes an admin user and, with it, their permission
// set. Deleting yourself is rejected.
func DeleteAdminUser(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentUser(c)
		if actor.ID == c.Param("id") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
			return
		}

		var user models.AdminUser
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		if err := db.Delete(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rec.Record(actor.ID, "admin_users.delete", "admin_user", user.ID,
			"deleted admin user "+user.Email, c.ClientIP(), user, nil)

		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}

// ToggleAdminUserStatus flips the active flag.
func ToggleAdminUserStatus(db *gorm.DB, rec *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.AdminUser
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		before := user

		user.IsActive = !user.IsActive
		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		actor := auth.CurrentUser(c)
		rec.Record(actor.ID, "admin_users.toggle_status", "admin_user", user.ID,
			"toggled status of "+user.Email, c.ClientIP(), before, user)

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
