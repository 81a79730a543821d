package models

import "time"

// ProgramUser is an end user of the points program. The dashboard only
// reads this directory; account management lives in the main product.
type ProgramUser struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	DisplayName string    `gorm:"size:200" json:"displayName"`
	Role        string    `gorm:"size:16;default:user" json:"role"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
