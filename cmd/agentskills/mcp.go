package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/marrick66/spec-agent-skills/pkg/logger"
	"github.com/marrick66/spec-agent-skills/pkg/mcp"
	"github.com/marrick66/spec-agent-skills/pkg/mcp/rpc"
	"github.com/marrick66/spec-agent-skills/pkg/presenter"
	"github.com/marrick66/spec-agent-skills/pkg/tools"
	"github.com/marrick66/spec-agent-skills/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type MCPRPCConfig struct {
	SocketPath string
}

func NewMCPRPCConfig() *MCPRPCConfig {
	return &MCPRPCConfig{
		SocketPath: ".agentskills/tools.sock",
	}
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the skill tools to other processes",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the skill tools over MCP on stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing list_skills,
activate_skill and read_skill_resource, plus the skills_system_prompt prompt.

Logs go to stderr so they never corrupt the protocol stream.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		// stdout carries the protocol
		presenter.SetQuiet(true)

		reg := mustLoadRegistry(ctx)
		srv, err := mcp.NewServer(reg, "agentskills", version.Get().Version,
			mcp.WithCustomPrompt(viper.GetString("sysprompt.custom")))
		if err != nil {
			presenter.Error(err, "Failed to create MCP server")
			os.Exit(1)
		}

		if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			presenter.Error(err, "MCP server failed")
			os.Exit(1)
		}
	},
}

var mcpRPCCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Serve the skill tools over HTTP on a Unix socket",
	Long: `Start an RPC server that listens on a Unix socket and runs the skill tools for
code execution environments. POST {"tool": "...", "arguments": {...}} to /.
The server keeps running until interrupted with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getMCPRPCConfigFromFlags(cmd)
		runMCPRPCCommand(cmd.Context(), config)
	},
}

func init() {
	defaults := NewMCPRPCConfig()
	mcpRPCCmd.Flags().String("socket", defaults.SocketPath, "Path to Unix socket for RPC communication")

	mcpCmd.AddCommand(withTracing(mcpServeCmd))
	mcpCmd.AddCommand(withTracing(mcpRPCCmd))
}

func getMCPRPCConfigFromFlags(cmd *cobra.Command) *MCPRPCConfig {
	config := NewMCPRPCConfig()

	if viper.IsSet("mcp.socket_path") {
		config.SocketPath = viper.GetString("mcp.socket_path")
	}
	if cmd.Flags().Changed("socket") {
		config.SocketPath, _ = cmd.Flags().GetString("socket")
	}
	return config
}

func validateMCPRPCConfig(config *MCPRPCConfig) error {
	if config.SocketPath == "" {
		return errors.New("socket path cannot be empty")
	}

	dir := filepath.Dir(config.SocketPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create socket directory")
	}
	return nil
}

func runMCPRPCCommand(ctx context.Context, config *MCPRPCConfig) {
	if err := validateMCPRPCConfig(config); err != nil {
		presenter.Error(err, "invalid RPC server configuration")
		os.Exit(1)
	}

	absSocketPath, err := filepath.Abs(config.SocketPath)
	if err != nil {
		presenter.Error(err, "failed to resolve socket path")
		os.Exit(1)
	}

	reg := mustLoadRegistry(ctx)
	rpcServer, err := rpc.NewToolRPCServer(tools.ForRegistry(reg), absSocketPath)
	if err != nil {
		presenter.Error(err, "failed to create RPC server")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- rpcServer.Start(ctx)
	}()

	logger.G(ctx).WithField("socket", absSocketPath).Info("RPC server started")
	presenter.Success("RPC server started successfully")
	presenter.Info("Socket: " + absSocketPath)
	presenter.Info("Press Ctrl+C to stop the server")

	select {
	case err := <-serverErr:
		if err != nil {
			logger.G(ctx).WithError(err).Error("RPC server error")
			presenter.Error(err, "RPC server failed")
			os.Exit(1)
		}
	case <-ctx.Done():
		presenter.Info("Shutdown signal received, stopping server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := rpcServer.Shutdown(shutdownCtx); err != nil {
			logger.G(ctx).WithError(err).Error("failed to shutdown RPC server gracefully")
			presenter.Error(err, "server shutdown error")
			os.Exit(1)
		}
	}

	presenter.Info("RPC server stopped")
}
