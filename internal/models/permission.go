package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Permission grants a set of CRUD-like actions on one dashboard module to
// one admin user. Route is the exact path string the module is addressed
// by; lookups never do prefix or glob matching.
type Permission struct {
	ID        string `json:"id"`
	Module    string `json:"module"`
	Page      string `json:"page"`
	MenuItem  string `json:"menuItem"`
	Route     string `json:"route"`
	CanView   bool   `json:"canView"`
	CanCreate bool   `json:"canCreate"`
	CanEdit   bool   `json:"canEdit"`
	CanDelete bool   `json:"canDelete"`
	// CanExport was added after the first production records were written,
	// so it may be absent on old rows. nil must read as "not allowed".
	CanExport *bool `json:"canExport,omitempty"`
}

// ExportAllowed resolves the optional export flag, treating a missing
// field as deny.
func (p Permission) ExportAllowed() bool {
	return p.CanExport != nil && *p.CanExport
}

// PermissionList is stored as a single JSON column on the admin user row.
// The list is the authoritative per-user override state; it is never
// re-derived from the role on read.
type PermissionList []Permission

func (l PermissionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *PermissionList) Scan(value interface{}) error {
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
		return fmt.Errorf("cannot scan %T into PermissionList", value)
	}
	if len(b) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(b, l)
}
