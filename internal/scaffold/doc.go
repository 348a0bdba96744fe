// Package scaffold drives the project creation flow: fetch the registry
// index, clone the chosen template, resolve the module selection, run
// each resolved module's instruction set, clean up template artifacts,
// and bootstrap dependencies. It powers the "armature create" command.
package scaffold
