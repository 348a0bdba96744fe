// Package instruction applies declarative file mutations to a generated
// project. Each instruction names one of eight actions, an optional guard
// condition group, and a target path relative to the project root. The
// Runner drives a module's instruction set strictly in order, evaluating
// guards, applying mutations, and persisting an audit record for every
// attempt. A failing instruction never aborts the rest of the batch.
package instruction
