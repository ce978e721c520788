// Package mcp serves the skill tools and the skills system prompt over the
// Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/skills"
	"github.com/marrick66/spec-agent-skills/pkg/sysprompt"
	"github.com/marrick66/spec-agent-skills/pkg/tools"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SystemPromptName is the MCP prompt that returns the skills system prompt.
const SystemPromptName = "skills_system_prompt"

// Server exposes a registry's skill tools over MCP.
type Server struct {
	registry     skills.Registry
	tools        *tools.ToolSet
	customPrompt string
	mcp          *server.MCPServer
}

// Option configures a Server
type Option func(*Server)

// WithCustomPrompt sets the text placed ahead of the skills section when
// the system prompt is requested without a custom argument.
func WithCustomPrompt(prompt string) Option {
	return func(s *Server) {
		s.customPrompt = prompt
	}
}

// NewServer builds an MCP server named name that serves the three skill
// tools and the system prompt for reg.
func NewServer(reg skills.Registry, name, version string, opts ...Option) (*Server, error) {
	s := &Server{
		registry: reg,
		tools:    tools.ForRegistry(reg),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	for _, tool := range s.tools.Tools() {
		schema, err := json.Marshal(tool.GenerateSchema())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal schema for tool %s", tool.Name())
		}
		s.mcp.AddTool(mcpgo.NewToolWithRawSchema(tool.Name(), tool.Description(), schema), s.handleToolCall)
	}

	s.mcp.AddPrompt(mcpgo.NewPrompt(SystemPromptName,
		mcpgo.WithPromptDescription("System prompt listing the available skills by name and description"),
		mcpgo.WithArgument("custom", mcpgo.ArgumentDescription("Text placed ahead of the skills section")),
	), s.handleSystemPrompt)

	return s, nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) handleToolCall(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	params := []byte("{}")
	if req.Params.Arguments != nil {
		b, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return mcpgo.NewToolResultError("Error: invalid arguments: " + err.Error()), nil
		}
		params = b
	}

	result := tools.RunTool(ctx, s.tools, req.Params.Name, string(params))
	if result.IsError() {
		return mcpgo.NewToolResultError(result.AssistantFacing()), nil
	}
	return mcpgo.NewToolResultText(result.AssistantFacing()), nil
}

func (s *Server) handleSystemPrompt(_ context.Context, req mcpgo.GetPromptRequest) (*mcpgo.GetPromptResult, error) {
	custom := s.customPrompt
	if v, ok := req.Params.Arguments["custom"]; ok && v != "" {
		custom = v
	}

	prompt, err := sysprompt.ForRegistry(s.registry, custom)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render skills system prompt")
	}

	return mcpgo.NewGetPromptResult(
		"Skills system prompt",
		[]mcpgo.PromptMessage{mcpgo.NewPromptMessage(mcpgo.RoleUser, mcpgo.NewTextContent(prompt))},
	), nil
}

// Serve runs the stdio transport on in and out until ctx is cancelled or
// in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(logger.G(ctx).WriterLevel(logrus.ErrorLevel), "", 0))

	logger.G(ctx).WithField("skills", s.registry.Len()).Info("serving skills over MCP stdio")
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "mcp stdio server failed")
	}
	return nil
}
