// Package rpc serves skill tool calls as JSON over HTTP on a unix socket,
// for local processes that cannot speak MCP.
package rpc

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/tools"
	tooltypes "github.com/marrick66/spec-agent-skills/pkg/types/tools"
	"github.com/pkg/errors"
)

// ToolRPCServer answers tool calls posted to a unix socket.
type ToolRPCServer struct {
	tools      *tools.ToolSet
	listener   net.Listener
	server     *http.Server
	socketPath string
}

// ToolRPCRequest is a request to call one tool.
type ToolRPCRequest struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// ToolRPCResponse carries the assistant-facing text and the structured
// result of a call.
type ToolRPCResponse struct {
	Content    string                         `json:"content"`
	IsError    bool                           `json:"isError"`
	Structured tooltypes.StructuredToolResult `json:"structured"`
}

// NewToolRPCServer listens on socketPath, replacing any stale socket file.
func NewToolRPCServer(set *tools.ToolSet, socketPath string) (*ToolRPCServer, error) {
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, errors.Wrap(err, "failed to remove existing socket")
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create unix socket listener")
	}

	s := &ToolRPCServer{
		tools:      set,
		listener:   listener,
		socketPath: socketPath,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleToolCall)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s, nil
}

func (s *ToolRPCServer) handleToolCall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ToolRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.G(ctx).WithError(err).Debug("failed to decode RPC request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.tools.Find(req.Tool); err != nil {
		http.Error(w, "tool not found", http.StatusNotFound)
		return
	}

	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	params, err := json.Marshal(args)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := tools.RunTool(ctx, s.tools, req.Tool, string(params))
	response := ToolRPCResponse{
		Content:    result.AssistantFacing(),
		IsError:    result.IsError(),
		Structured: result.StructuredData(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.G(ctx).WithError(err).Error("failed to encode response")
	}
}

// Start serves until Shutdown is called.
func (s *ToolRPCServer) Start(ctx context.Context) error {
	logger.G(ctx).WithField("socket", s.socketPath).Info("starting skill tool RPC server")
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "RPC server failed")
	}
	return nil
}

// Shutdown stops the server and removes the socket file.
func (s *ToolRPCServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shutdown RPC server")
	}
	if err := os.RemoveAll(s.socketPath); err != nil {
		logger.G(ctx).WithError(err).Warn("failed to remove socket file")
	}
	return nil
}

// SocketPath returns the path to the unix socket
func (s *ToolRPCServer) SocketPath() string {
	return s.socketPath
}
