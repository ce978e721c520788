// Package tools defines the contract shared by the skill tools, the MCP
// server and the CLI renderers: the Tool interface, tool results and the
// structured metadata a result carries.
package tools

import (
	"context"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"
)

// Names of the progressive-disclosure tools.
const (
	ListSkillsToolName        = "list_skills"
	ActivateSkillToolName     = "activate_skill"
	ReadSkillResourceToolName = "read_skill_resource"
)

// ErrorPrefix starts every assistant-facing error string.
const ErrorPrefix = "Error: "

// Tool is a callable exposed to an agent. Parameters are passed as a JSON
// object encoded in a string.
type Tool interface {
	GenerateSchema() *jsonschema.Schema
	Name() string
	Description() string
	ValidateInput(parameters string) error
	Execute(ctx context.Context, parameters string) ToolResult
	TracingKVs(parameters string) ([]attribute.KeyValue, error)
}

// ToolResult is the outcome of a tool call.
type ToolResult interface {
	GetResult() string
	GetError() string
	IsError() bool
	// AssistantFacing is the text handed back to the model. Errors are
	// always downgraded to a string starting with ErrorPrefix.
	AssistantFacing() string
	StructuredData() StructuredToolResult
}

// BaseToolResult is a plain ToolResult for failures that happen before a
// tool gets to build its own result.
type BaseToolResult struct {
	ToolName string
	Result   string
	Error    string
}

func (r BaseToolResult) GetResult() string { return r.Result }
func (r BaseToolResult) GetError() string  { return r.Error }
func (r BaseToolResult) IsError() bool     { return r.Error != "" }

func (r BaseToolResult) AssistantFacing() string {
	return StringifyToolResult(r.Result, r.Error)
}

func (r BaseToolResult) StructuredData() StructuredToolResult {
	return NewStructuredResult(r.ToolName, r.Error, nil)
}

// StringifyToolResult renders a result for the model. An error wins over
// any partial result.
func StringifyToolResult(result, err string) string {
	if err != "" {
		return ErrorPrefix + err
	}
	return result
}
