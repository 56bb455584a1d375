package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/window-monitor/internal/config"
	"github.com/mj1618/window-monitor/internal/platform"
	"github.com/mj1618/window-monitor/internal/version"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the platform prober.
type mcpServer struct {
	prober   platform.BoundsProber
	process  string
	proberMu sync.Mutex
	mcp      *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	Process   string // default process when the tool call omits one
	Timeout   time.Duration
}

// newMCPServer creates and configures an MCP server with the probe tool.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	provider, err := platform.NewProvider(platform.ProviderOptions{Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	if provider.Prober == nil {
		return nil, fmt.Errorf("window probing not available on this platform")
	}

	process := cfg.Process
	if process == "" {
		process = config.DefaultProcess
	}

	s := &mcpServer{
		prober:  provider.Prober,
		process: process,
	}

	s.mcp = mcpserver.NewMCPServer(
		"window-monitor",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("probe_window",
			mcp.WithDescription("Get the position and size of an application's first window. Returns x, y, width and height in screen points."),
			mcp.WithString("process", mcp.Description(fmt.Sprintf("Application process name (default %q)", s.process))),
		),
		s.handleProbe,
	)
}

func (s *mcpServer) handleProbe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	process := stringParam(request.GetArguments(), "process", s.process)

	s.proberMu.Lock()
	result := probeOnce(ctx, s.prober, process)
	s.proberMu.Unlock()

	b, err := yaml.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	if !result.OK {
		return mcp.NewToolResultError(string(b)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// stringParam extracts a non-empty string argument from an MCP tool call.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return def
}
