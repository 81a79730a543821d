package models

import "time"

// Variable is an event attribute rules can reference in their conditions.
type Variable struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	ValueType string    `gorm:"size:32;not null" json:"valueType"`
	InputType string    `gorm:"size:32;not null" json:"inputType"`
	CreatedBy string    `gorm:"size:200" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
