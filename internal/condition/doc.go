// Package condition evaluates instruction guard predicates against the
// module selection state and the generated project's files. Evaluation is
// pure with respect to the project tree: conditions read files but never
// mutate them. Every evaluation produces a human-readable reason naming
// the concrete values compared, which callers persist for auditing.
package condition
