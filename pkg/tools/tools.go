// Package tools exposes a skill registry to an agent as three
// progressive-disclosure tools: list_skills, activate_skill and
// read_skill_resource. Tool failures are returned as results whose
// assistant-facing text starts with "Error: "; they never escape as Go
// errors.
package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/marrick66/spec-agent-skills/pkg/telemetry"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GenerateSchema reflects T into an inline JSON schema that rejects
// unknown properties.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

// NewSkillTools returns the three skill tools bound to reg, in the order
// an agent is expected to use them.
func NewSkillTools(reg skills.Registry) []tooltypes.Tool {
	return []tooltypes.Tool{
		NewListSkillsTool(reg),
		NewActivateSkillTool(reg),
		NewReadSkillResourceTool(reg),
	}
}

// ToolSet is an ordered, name-addressable collection of tools.
type ToolSet struct {
	tools []tooltypes.Tool
}

// NewToolSet creates a ToolSet from tools
func NewToolSet(tools ...tooltypes.Tool) *ToolSet {
	return &ToolSet{tools: tools}
}

// ForRegistry is shorthand for NewToolSet(NewSkillTools(reg)...).
func ForRegistry(reg skills.Registry) *ToolSet {
	return NewToolSet(NewSkillTools(reg)...)
}

// Tools returns the tools in registration order.
func (s *ToolSet) Tools() []tooltypes.Tool {
	return append([]tooltypes.Tool(nil), s.tools...)
}

// Find returns the tool with the given name.
func (s *ToolSet) Find(name string) (tooltypes.Tool, error) {
	for _, tool := range s.tools {
		if tool.Name() == name {
			return tool, nil
		}
	}
	return nil, errors.Errorf("tool %s not found", name)
}

var tracer = telemetry.Tracer("agentskills.tools")

// RunTool validates and executes a tool call inside a span. Every call
// gets a fresh call ID that is attached to the span and the log entry.
func RunTool(ctx context.Context, set *ToolSet, toolName string, parameters string) tooltypes.ToolResult {
	callID := uuid.NewString()
	log := logger.G(ctx).WithField("tool", toolName).WithField("call_id", callID)

	tool, err := set.Find(toolName)
	if err != nil {
		return tooltypes.BaseToolResult{
			ToolName: toolName,
			Error:    errors.Wrap(err, "failed to find tool").Error(),
		}
	}

	kvs, err := tool.TracingKVs(parameters)
	if err != nil {
		log.WithError(err).Debug("failed to get tracing kvs")
	}
	kvs = append(kvs, attribute.String("tool.call_id", callID))

	ctx, span := tracer.Start(
		ctx,
		fmt.Sprintf("tools.run_tool.%s", toolName),
		trace.WithAttributes(kvs...),
	)
	defer span.End()

	if err := tool.ValidateInput(parameters); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.WithError(err).Debug("invalid tool input")
		return tooltypes.BaseToolResult{ToolName: toolName, Error: err.Error()}
	}

	result := tool.Execute(logger.WithLogger(ctx, log), parameters)
	if result.IsError() {
		span.SetStatus(codes.Error, result.GetError())
		span.RecordError(errors.New(result.GetError()))
		log.WithField("error", result.GetError()).Debug("tool call failed")
	} else {
		span.SetStatus(codes.Ok, "")
		log.Debug("tool call succeeded")
	}

	return result
}
