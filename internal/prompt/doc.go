// Package prompt implements the interactive selections used by the create
// flow: a numbered template menu, comma-separated multi-select for
// optional modules, and a yes/no confirmation. Input and output are
// injected so tests can drive the prompts without a terminal.
package prompt
