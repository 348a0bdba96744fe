// Package runtime detects a generated project's package manager and runs
// its install step after module processing. Detection prefers lockfile
// evidence over PATH availability; a missing runtime is reported as a
// warning, never an error, because the scaffold itself is already complete.
package runtime
