// Package resolver expands a user's module selection into the final,
// ordered, conflict-free list of modules to install. Resolution runs in
// three passes: transitive closure over each module's includes, removal
// of modules named in any closure member's excludes, and a stable sort
// by priority descending. Modules reference each other by name through a
// catalog lookup table, never as an object graph, so cyclic includes
// terminate by construction.
package resolver
