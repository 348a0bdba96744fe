package resolver

import (
	"sort"

	"github.com/armature-labs/armature/internal/template"
)

// Exclusion records a module dropped during conflict filtering, naming
// the module whose excludes list removed it.
type Exclusion struct {
	Module     string
	ExcludedBy string
}

// Resolution is the outcome of expanding a selection. Modules is the final
// install order. Included lists modules added purely through inclusion,
// in discovery order. Excluded lists every conflict-filter removal; under
// mutual exclusion both modules appear here (drop-both semantics).
// Missing lists include references that name no catalog module. An empty
// Modules list means nothing to install, not an error.
type Resolution struct {
	Modules  []template.Module
	Included []string
	Excluded []Exclusion
	Missing  []string
}

// Resolve expands the selected modules against the catalog. The selection
// order is preserved as the base ordering; transitively included modules
// follow in discovery order, and the final list is stably sorted by
// priority descending so equal-priority modules keep that order.
func Resolve(selected []template.Module, catalog []template.Module) Resolution {
	byName := make(map[string]template.Module, len(catalog))
	for _, m := range catalog {
		byName[m.Name] = m
	}

	var res Resolution

	// Pass 1: closure expansion over includes, cycle-safe via visited set.
	visited := make(map[string]bool, len(selected))
	closure := make([]template.Module, 0, len(selected))
	missingSeen := make(map[string]bool)

	var expand func(m template.Module, viaInclude bool)
	expand = func(m template.Module, viaInclude bool) {
		if visited[m.Name] {
			return
		}
		visited[m.Name] = true
		closure = append(closure, m)
		if viaInclude {
			res.Included = append(res.Included, m.Name)
		}
		for _, name := range m.Includes {
			dep, ok := byName[name]
			if !ok {
				if !missingSeen[name] {
					missingSeen[name] = true
					res.Missing = append(res.Missing, name)
				}
				continue
			}
			expand(dep, true)
		}
	}

	for _, m := range selected {
		expand(m, false)
	}

	// Pass 2: conflict filtering. Removal marks are collected across the
	// whole closure before filtering, so A excluding B and B excluding A
	// drops both. A module never removes itself via its own excludes, and
	// excluding a module outside the closure is a no-op.
	removed := make(map[string]bool)
	for _, m := range closure {
		for _, name := range m.Excludes {
			if name != m.Name && visited[name] {
				removed[name] = true
				res.Excluded = append(res.Excluded, Exclusion{Module: name, ExcludedBy: m.Name})
			}
		}
	}

	for _, m := range closure {
		if !removed[m.Name] {
			res.Modules = append(res.Modules, m)
		}
	}

	// Pass 3: deterministic ordering. Priority is an install-sequencing
	// hint; the stable sort keeps closure order for ties.
	sort.SliceStable(res.Modules, func(i, j int) bool {
		return res.Modules[i].Priority > res.Modules[j].Priority
	})

	return res
}

// SelectByName maps module names to catalog modules, preserving the given
// order. Names absent from the catalog are returned separately.
func SelectByName(names []string, catalog []template.Module) (selected []template.Module, unknown []string) {
	byName := make(map[string]template.Module, len(catalog))
	for _, m := range catalog {
		byName[m.Name] = m
	}
	for _, name := range names {
		if m, ok := byName[name]; ok {
			selected = append(selected, m)
		} else {
			unknown = append(unknown, name)
		}
	}
	return selected, unknown
}
