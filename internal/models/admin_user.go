package models

import "time"

// Role is the coarse privilege tier of an admin user. The enumeration is
// closed; role templates encode what each tier can do by default.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleViewer     Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleModerator, RoleViewer:
		return true
	}
	return false
}

type AdminUser struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	Name         string         `gorm:"size:200;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         Role           `gorm:"size:32;not null" json:"role"`
	Avatar       string         `gorm:"size:512" json:"avatar,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	Permissions  PermissionList `gorm:"type:json" json:"permissions"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	LastLogin    *time.Time     `json:"lastLogin,omitempty"`
}
