package permissions

import (
	"github.com/google/uuid"

	"rewards_admin/internal/models"
)

// RoleTemplate is the default permission shape for one role. Defaults
// carry no ids and no user binding; they are expanded into concrete
// records when a user is created or explicitly reset.
type RoleTemplate struct {
	Role        models.Role         `json:"role"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Defaults    []models.Permission `json:"defaultPermissions"`
}

// Modules hidden entirely from moderator and viewer templates. Absence
// from a template is equivalent to full deny.
var restrictedModules = map[string]bool{
	"admin-users": true,
	"variables":   true,
	"admin-logs":  true,
}

// RoleTemplates returns the static role to defaults mapping, rebuilt from
// the menu catalog on every call.
func RoleTemplates() []RoleTemplate {
	return []RoleTemplate{
		{
			Role:        models.RoleSuperAdmin,
			Name:        "Super Administrator",
			Description: "Full access to the whole system",
			Defaults:    buildDefaults(func(e MenuEntry) bool { return true }, fullGrant),
		},
		{
			Role:        models.RoleAdmin,
			Name:        "Administrator",
			Description: "Broad access, except admin user management",
			Defaults:    buildDefaults(func(e MenuEntry) bool { return e.ID != "admin-users" }, fullGrant),
		},
		{
			Role:        models.RoleModerator,
			Name:        "Moderator",
			Description: "Limited editing access",
			Defaults:    buildDefaults(func(e MenuEntry) bool { return !restrictedModules[e.ID] }, moderatorGrant),
		},
		{
			Role:        models.RoleViewer,
			Name:        "Viewer",
			Description: "View only",
			Defaults:    buildDefaults(func(e MenuEntry) bool { return !restrictedModules[e.ID] }, viewerGrant),
		},
	}
}

func fullGrant(e MenuEntry) models.Permission {
	return models.Permission{
		Module:    "dashboard",
		Page:      e.Title,
		MenuItem:  e.Title,
		Route:     e.Path,
		CanView:   true,
		CanCreate: e.Defaults.Create,
		CanEdit:   e.Defaults.Edit,
		CanDelete: e.Defaults.Delete,
		CanExport: boolPtr(e.Defaults.Export),
	}
}

func moderatorGrant(e MenuEntry) models.Permission {
	// The dashboard landing page is view-only even for moderators.
	editable := e.ID != "dashboard"
	return models.Permission{
		Module:    "dashboard",
		Page:      e.Title,
		MenuItem:  e.Title,
		Route:     e.Path,
		CanView:   true,
		CanCreate: editable,
		CanEdit:   editable,
		CanDelete: false,
		CanExport: boolPtr(e.Defaults.Export),
	}
}

func viewerGrant(e MenuEntry) models.Permission {
	return models.Permission{
		Module:    "dashboard",
		Page:      e.Title,
		MenuItem:  e.Title,
		Route:     e.Path,
		CanView:   true,
		CanExport: boolPtr(false),
	}
}

func buildDefaults(include func(MenuEntry) bool, grant func(MenuEntry) models.Permission) []models.Permission {
	var out []models.Permission
	for _, entry := range menuStructure {
		if include(entry) {
			out = append(out, grant(entry))
		}
	}
	return out
}

// generateForRole expands the template for role into concrete records,
// each with a freshly generated id. Two calls for the same role yield
// structurally equal but independently addressable lists. An unknown role
// yields an empty list, which callers must treat as no access.
func generateForRole(role models.Role) []models.Permission {
	for _, t := range RoleTemplates() {
		if t.Role != role {
			continue
		}
		out := make([]models.Permission, 0, len(t.Defaults))
		for _, d := range t.Defaults {
			d.ID = uuid.NewString()
			if d.CanExport != nil {
				v := *d.CanExport
				d.CanExport = &v
			}
			out = append(out, d)
		}
		return out
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
