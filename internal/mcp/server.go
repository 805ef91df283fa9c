package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/window"
)

const (
	ServerName    = "dxdesk"
	ServerVersion = "0.1.0"
)

// Desk is the daemon surface the tools drive. *ipc.Client implements it.
type Desk interface {
	ListWindows() ([]window.Window, error)
	OpenWindow(p ipc.OpenWindowPayload) (*window.Window, error)
	CloseWindow(ref string) error
	MinimizeWindow(ref string, animate bool, target *layout.Point) (*window.Window, error)
	RestoreWindow(ref string) (*window.Window, error)
	FocusWindow(ref string) (*window.Window, error)
	SetTheme(mode string) (*ipc.ThemeData, error)
	SetVibe(key string) (*ipc.VibesData, error)
}

var _ Desk = (*ipc.Client)(nil)

// Server is the MCP server exposing desktop window tools.
type Server struct {
	mcpServer *mcpsdk.Server
	desk      Desk
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards to desk.
func NewServer(desk Desk, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{desk: desk, logger: logger}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows open on the dxdesk desktop with their geometry, z-order and minimize/animation state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open the window for an app route, or focus it if the route is already open. Size and position are clamped to the visible desktop; omitted geometry cascades from the top-left.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window by id or route. Any running animation for it is cancelled.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Minimize a window to its dock slot, animated by default.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Restore a minimized window to where it was, animating out of its current dock slot.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to the front.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_theme",
		Description: "Set the desktop theme to light, dark or auto (follow the system preference).",
	}, s.handleSetTheme)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_vibe",
		Description: "Switch the ambient music vibe (citypop, synthwave or lofi).",
	}, s.handleSetVibe)
}
