package permissions

// Route strings for every addressable dashboard section. The menu catalog,
// the router, and stored permission records all use these exact values; a
// mismatch silently denies access rather than erroring.
const (
	RouteDashboard       = "/dashboard"
	RouteRules           = "/dashboard/rules"
	RouteConversionRates = "/dashboard/conversionrate"
	RouteUsers           = "/dashboard/users"
	RouteAdminUsers      = "/dashboard/admin-users"
	RouteVariables       = "/dashboard/variables"
	RouteAdminLogs       = "/dashboard/adminlogs"
)

// ActionSet holds the default action flags a menu entry grants when a role
// template includes it.
type ActionSet struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
	Export bool `json:"export"`
}

// MenuEntry is one addressable section of the dashboard. The catalog is
// static and append-only as the product grows.
type MenuEntry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Defaults ActionSet `json:"defaultPermissions"`
}

var menuStructure = []MenuEntry{
	{
		ID:       "dashboard",
		Title:    "Dashboard",
		Path:     RouteDashboard,
		Defaults: ActionSet{View: true},
	},
	{
		ID:       "rules",
		Title:    "Rules",
		Path:     RouteRules,
		Defaults: ActionSet{View: true, Create: true, Edit: true, Delete: true, Export: true},
	},
	{
		ID:       "conversion-rates",
		Title:    "Conversion Rates",
		Path:     RouteConversionRates,
		Defaults: ActionSet{View: true, Create: true, Edit: true, Delete: true, Export: true},
	},
	{
		ID:       "users",
		Title:    "Users",
		Path:     RouteUsers,
		Defaults: ActionSet{View: true, Create: true, Edit: true, Delete: true, Export: true},
	},
	{
		ID:       "admin-users",
		Title:    "Admin Users",
		Path:     RouteAdminUsers,
		Defaults: ActionSet{View: true, Create: true, Edit: true, Delete: true},
	},
	{
		ID:       "variables",
		Title:    "Variables",
		Path:     RouteVariables,
		Defaults: ActionSet{View: true, Create: true, Edit: true, Delete: true, Export: true},
	},
	{
		ID:       "admin-logs",
		Title:    "Admin Logs",
		Path:     RouteAdminLogs,
		Defaults: ActionSet{View: true, Export: true},
	},
}

// MenuStructure returns the static catalog. Callers get a copy so the
// catalog itself cannot be mutated.
func MenuStructure() []MenuEntry {
	out := make([]MenuEntry, len(menuStructure))
	copy(out, menuStructure)
	return out
}
