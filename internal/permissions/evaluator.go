package permissions

import "rewards_admin/internal/models"

// Action is one of the CRUD-like operations a permission record can grant.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// actionChecks maps each action to its accessor on a permission record.
// Unknown action strings fall through to deny.
var actionChecks = map[Action]func(models.Permission) bool{
	ActionView:   func(p models.Permission) bool { return p.CanView },
	ActionCreate: func(p models.Permission) bool { return p.CanCreate },
	ActionEdit:   func(p models.Permission) bool { return p.CanEdit },
	ActionDelete: func(p models.Permission) bool { return p.CanDelete },
	ActionExport: models.Permission.ExportAllowed,
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	_, ok := actionChecks[a]
	return ok
}

type identityKind int

const (
	kindUnauthenticated identityKind = iota
	kindSuperAdmin
	kindScoped
)

// Identity is who is asking, as a tagged variant: unauthenticated (all
// checks deny), super admin (all checks allow, independent of the stored
// permission list), or scoped to a concrete permission list.
type Identity struct {
	kind  identityKind
	role  models.Role
	perms []models.Permission
}

// Unauthenticated is the identity of a missing or not yet loaded user.
func Unauthenticated() Identity {
	return Identity{kind: kindUnauthenticated}
}

// AsSuperAdmin is privileged by role alone. Even an empty or corrupted
// permission list cannot lock out a super admin.
func AsSuperAdmin() Identity {
	return Identity{kind: kindSuperAdmin, role: models.RoleSuperAdmin}
}

// Scoped evaluates every check against the given permission list.
func Scoped(role models.Role, perms []models.Permission) Identity {
	return Identity{kind: kindScoped, role: role, perms: perms}
}

// IdentityOf classifies an admin user. A nil user is unauthenticated.
func IdentityOf(u *models.AdminUser) Identity {
	switch {
	case u == nil:
		return Unauthenticated()
	case u.Role == models.RoleSuperAdmin:
		id := AsSuperAdmin()
		id.perms = u.Permissions
		return id
	default:
		return Scoped(u.Role, u.Permissions)
	}
}

// Has answers one authorization query. Scoped lookups match the route by
// exact string equality and deny when no record matches.
func (id Identity) Has(route string, action Action) bool {
	switch id.kind {
	case kindSuperAdmin:
		return true
	case kindScoped:
		check, ok := actionChecks[action]
		if !ok {
			return false
		}
		for _, p := range id.perms {
			if p.Route == route {
				return check(p)
			}
		}
		return false
	default:
		return false
	}
}

func (id Identity) CanViewPage(route string) bool { return id.Has(route, ActionView) }
func (id Identity) CanCreate(route string) bool   { return id.Has(route, ActionCreate) }
func (id Identity) CanEdit(route string) bool     { return id.Has(route, ActionEdit) }
func (id Identity) CanDelete(route string) bool   { return id.Has(route, ActionDelete) }
func (id Identity) CanExport(route string) bool   { return id.Has(route, ActionExport) }

// Permissions returns the identity's stored permission list. For a super
// admin this is informational only; checks never consult it.
func (id Identity) Permissions() []models.Permission {
	if id.perms == nil {
		return []models.Permission{}
	}
	return id.perms
}

func (id Identity) Authenticated() bool { return id.kind != kindUnauthenticated }

func (id Identity) IsSuperAdmin() bool { return id.kind == kindSuperAdmin }

func (id Identity) IsAdmin() bool {
	return id.kind == kindSuperAdmin || (id.kind == kindScoped && id.role == models.RoleAdmin)
}
