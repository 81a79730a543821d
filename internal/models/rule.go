package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type EffectType string

const (
	EffectAdd      EffectType = "add"
	EffectMultiply EffectType = "multiply"
)

type OperationType string

const (
	OpEqual        OperationType = "equal"
	OpNotEqual     OperationType = "not_equal"
	OpGreater      OperationType = "greater"
	OpGreaterEqual OperationType = "greater_equal"
	OpLess         OperationType = "less"
	OpLessEqual    OperationType = "less_equal"
	OpExist        OperationType = "exist"
	OpNotExist     OperationType = "not_exist"
)

// Valid reports whether e is a known effect type.
func (e EffectType) Valid() bool {
	return e == EffectAdd || e == EffectMultiply
}

// Valid reports whether o is a known operation.
func (o OperationType) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual, OpExist, OpNotExist:
		return true
	}
	return false
}

// Condition is one predicate of a rule. Value holds one entry for basic
// inputs and many for list inputs; ValueFile references an uploaded list.
type Condition struct {
	Field     string        `json:"field"`
	Operation OperationType `json:"operation"`
	Value     []string      `json:"value"`
	ValueType string        `json:"valueType"`
	InputType string        `json:"inputType"`
	ValueFile string        `json:"valueFile"`
}

// ConditionList is stored as a JSON column on the rule row.
type ConditionList []Condition

func (l ConditionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ConditionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ConditionList", value)
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}

// Rule awards or scales points when all of its conditions match an event.
type Rule struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	Name        string        `gorm:"size:200;not null" json:"name"`
	EffectType  EffectType    `gorm:"size:16;not null" json:"effectType"`
	EffectValue float64       `gorm:"not null" json:"effectValue"`
	Conditions  ConditionList `gorm:"type:json" json:"conditions"`
	Status      Status        `gorm:"size:16;default:active" json:"status"`
	CreatedBy   string        `gorm:"size:200" json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
