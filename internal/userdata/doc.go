// Package userdata resolves and initializes the user-scoped directory
// tree under ~/.armature/. Every path supports an environment override
// (ARMATURE_LOGS, ARMATURE_CACHE) so tests and CI can sandbox the CLI
// without touching the real home directory.
package userdata
