// Package platform provides cross-platform filesystem operations. On Unix
// systems permission changes use chmod directly; on Windows they are a
// no-op because Windows does not support Unix-style permission bits.
package platform
