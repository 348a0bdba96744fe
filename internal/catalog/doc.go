// Package catalog retrieves the template registry index and clones
// template repositories. The index is a JSON document listing template
// definitions, fetched over HTTP (or read from a local file path) and
// cached under ~/.armature/cache/ with a freshness window. Clones are
// shallow and atomic: git writes into a .tmp directory that is renamed
// into place only on success.
package catalog
