// Package updater implements version checking for the armature binary.
// It compares the running build against the latest GitHub release and
// powers the non-blocking startup banner through a daily-cached check.
// It reports availability and an install hint only; it never replaces
// the running executable.
package updater
