package workspace

import (
	_ "embed"

	"github.com/richapps/ngtron/internal/schema"
)

//go:embed schema/workspace.schema.json
var workspaceSchema []byte

//go:embed schema/project.schema.json
var projectSchema []byte

var (
	validator        = schema.New("workspace.schema.json", workspaceSchema)
	projectValidator = schema.New("project.schema.json", projectSchema)
)

// Validate checks the top-level shape of plain JSON workspace bytes: a
// version and a projects map. Project bodies are checked one at a time by
// ValidateProject, only when a project is used. The error return is for
// malformed JSON or schema compilation failures; violations are reported in
// the result.
func Validate(data []byte) (*schema.Result, error) {
	return validator.Validate(data)
}

// ValidateProject checks the structure of one encoded project entry.
func ValidateProject(data []byte) (*schema.Result, error) {
	return projectValidator.Validate(data)
}
