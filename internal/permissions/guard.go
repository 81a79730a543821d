package permissions

// Guard gates a value behind a single (route, action) check. It holds no
// state of its own; every call re-reads the identity it is handed, so an
// edit to the acting user's permissions is reflected by the next call.
type Guard struct {
	Route  string
	Action Action
}

// PageGuard gates page-level access, fixing the action to view.
func PageGuard(route string) Guard {
	return Guard{Route: route, Action: ActionView}
}

// Allow reports whether the identity may perform the guarded action.
func (g Guard) Allow(id Identity) bool {
	return id.Has(g.Route, g.Action)
}

// Render projects the decision onto a value: children when allowed,
// fallback otherwise.
func (g Guard) Render(id Identity, children, fallback interface{}) interface{} {
	if g.Allow(id) {
		return children
	}
	return fallback
}

// VisibleMenu filters the catalog down to the entries the identity may
// view, in catalog order. This is what the dashboard navigation renders.
func VisibleMenu(id Identity) []MenuEntry {
	var out []MenuEntry
	for _, entry := range menuStructure {
		if PageGuard(entry.Path).Allow(id) {
			out = append(out, entry)
		}
	}
	return out
}
