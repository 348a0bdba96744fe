// Package cli wires the cobra command tree for the armature binary:
// create, templates, modules, logs, config, version, and update.
package cli
