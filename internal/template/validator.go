package template

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/template.schema.json schema/instructions.schema.json
var schemaFS embed.FS

const (
	definitionSchema   = "template.schema.json"
	instructionsSchema = "instructions.schema.json"
)

var (
	compiledSchemas map[string]*jsonschema.Schema
	compileOnce     sync.Once
	compileErr      error
	printer         = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/modules/0/name")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// getSchema compiles both embedded JSON schemas once and returns the named one.
func getSchema(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, n := range []string{definitionSchema, instructionsSchema} {
			data, err := schemaFS.ReadFile("schema/" + n)
			if err != nil {
				compileErr = fmt.Errorf("reading embedded schema %s: %w", n, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", n, err)
				return
			}
			if err := c.AddResource(n, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", n, err)
				return
			}
		}

		compiledSchemas = make(map[string]*jsonschema.Schema, 2)
		for _, n := range []string{definitionSchema, instructionsSchema} {
			s, err := c.Compile(n)
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", n, err)
				return
			}
			compiledSchemas[n] = s
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return compiledSchemas[name], nil
}

// ValidateDefinition validates a decoded template definition document
// against the template schema. The error return is for schema compilation
// failures; validation issues are returned in the ValidationResult.
func ValidateDefinition(doc interface{}) (*ValidationResult, error) {
	return validateAgainst(definitionSchema, doc)
}

// ValidateInstructionSet validates a decoded instruction-set document
// against the instructions schema.
func ValidateInstructionSet(doc interface{}) (*ValidationResult, error) {
	return validateAgainst(instructionsSchema, doc)
}

func validateAgainst(schemaName string, doc interface{}) (*ValidationResult, error) {
	schema, err := getSchema(schemaName)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf
// errors with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// FormatIssues renders validation issues one per line for warnings.
func FormatIssues(issues []ValidationIssue) string {
	var b strings.Builder
	for _, issue := range issues {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		b.WriteString("  " + msg + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
