// Package audit persists an immutable record for every instruction attempt
// made against a generated project. Records are written as one JSON file
// per hash under the user-scoped logs directory and are never mutated
// after creation. The store supports lookup by hash, filtered listing
// newest-first, and age-based pruning.
package audit
