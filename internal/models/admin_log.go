package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdminLog records one mutation performed through the admin API. The
// auto-increment id doubles as the cursor for paginated listing.
type AdminLog struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	UserID      string         `gorm:"index;size:36" json:"userId"` // empty for system actions
	Action      string         `gorm:"size:64;not null" json:"action"`
	Entity      string         `gorm:"size:64;not null" json:"entity"`
	EntityID    string         `gorm:"index;size:36" json:"entityId"`
	OldData     datatypes.JSON `gorm:"type:json" json:"oldData"`
	NewData     datatypes.JSON `gorm:"type:json" json:"newData"`
	Description string         `gorm:"size:512" json:"description"`
	IP          string         `gorm:"size:64" json:"ip"`
	CreatedAt   time.Time      `json:"createdAt"`
}
