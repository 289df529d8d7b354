package apps

import (
	"sort"
)

// Resolver filters configured descriptor lists against live availability
type Resolver struct {
	lists     map[Category][]App
	available Availability
}

// NewResolver creates a resolver over the given descriptor lists.
// A nil availability falls back to a PATH lookup.
func NewResolver(lists map[Category][]App, available Availability) *Resolver {
	if available == nil {
		available = IsCommandAvailable
	}
	return &Resolver{lists: lists, available: available}
}

// Resolve returns the installed candidates for a category, sorted
// ascending by priority with declaration order preserved for ties.
// An empty result means "fall back to a generic opener", not an error.
func (r *Resolver) Resolve(category Category) []App {
	var resolved []App
	for _, app := range r.lists[category] {
		if app.Command == ShellHereCommand || r.available(app.Command) {
			resolved = append(resolved, app)
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Priority < resolved[j].Priority
	})
	return resolved
}
