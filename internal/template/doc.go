// Package template defines the template and module data model, loads
// definition files from cloned templates (template.yaml with a
// template.json fallback), loads per-module instruction-set documents,
// and validates both against the JSON Schemas embedded in schema/.
package template
