package models

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ConversionRate maps points to currency for a date window. Exactly one
// rate carries the default flag; it applies whenever no dated rate matches.
type ConversionRate struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Rate      float64   `gorm:"not null" json:"rate"`
	IsDefault bool      `gorm:"column:is_default;default:false" json:"default"`
	Status    Status    `gorm:"size:16;default:active" json:"status"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedBy string    `gorm:"size:200" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
