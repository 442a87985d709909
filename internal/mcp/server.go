// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/intervalgen/application/service"
	"github.com/helixml/intervalgen/domain/interval"
)

// Generator produces interval schedules for MCP tools.
type Generator interface {
	Generate(ctx context.Context, req service.Request) (service.ScheduleResult, error)
}

// Server wraps the MCP server with interval generation tools.
type Server struct {
	mcpServer *server.MCPServer
	generator Generator
	version   string
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(generator Generator, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		generator: generator,
		version:   version,
		logger:    logger,
	}

	mcpServer := server.NewMCPServer(
		"intervalgen",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	granularities := make([]string, 0, len(interval.Granularities()))
	for _, g := range interval.Granularities() {
		granularities = append(granularities, g.String())
	}

	generateTool := mcp.NewTool("generate_intervals",
		mcp.WithDescription("Split an inclusive date range into ordered, contiguous sub-intervals. "+
			"Each interval reports whether it is partial, i.e. shorter than a full unit."),
		mcp.WithString("begin",
			mcp.Required(),
			mcp.Description("First day of the range, YYYY-MM-DD"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Last day of the range, YYYY-MM-DD"),
		),
		mcp.WithString("granularity",
			mcp.Required(),
			mcp.Description("Interval kind"),
			mcp.Enum(granularities...),
		),
		mcp.WithNumber("count",
			mcp.Description("Units per interval, or number of parts for granularity parts (default: 1)"),
		),
		mcp.WithBoolean("fixed",
			mcp.Description("Align boundaries to the calendar instead of the begin date (default: false)"),
		),
		mcp.WithString("week_start",
			mcp.Description("First day of the week for fixed week intervals, e.g. monday"),
		),
	)
	mcpServer.AddTool(generateTool, s.handleGenerate)

	versionTool := mcp.NewTool("get_version",
		mcp.WithDescription("Get the intervalgen server version"),
	)
	mcpServer.AddTool(versionTool, s.handleVersion)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	begin, err := request.RequireString("begin")
	if err != nil {
		return mcp.NewToolResultError("begin is required"), nil
	}
	end, err := request.RequireString("end")
	if err != nil {
		return mcp.NewToolResultError("end is required"), nil
	}
	granularity, err := request.RequireString("granularity")
	if err != nil {
		return mcp.NewToolResultError("granularity is required"), nil
	}

	req, err := service.ParseRequest(service.RequestParams{
		Begin:       begin,
		End:         end,
		Granularity: granularity,
		Count:       request.GetInt("count", 1),
		Fixed:       request.GetBool("fixed", false),
		WeekStart:   request.GetString("week_start", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("generate intervals failed", slog.String("request", req.String()), slog.Any("error", err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	jsonBytes, err := json.Marshal(result.Records())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.version), nil
}

// MCPServer returns the underlying MCP server for stdio or HTTP serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
