package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/window"
)

func requireWindow(ref, tool string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%s: window is required", tool)
	}
	return ref, nil
}

func windowOutput(w *window.Window) WindowOutput {
	if w == nil {
		return WindowOutput{}
	}
	info := windowInfo(*w)
	return WindowOutput{Window: &info}
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	ws, err := s.desk.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	includeMinimized := args.IncludeMinimized == nil || *args.IncludeMinimized

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(ws))}
	for _, w := range ws {
		if w.IsMinimized && !includeMinimized {
			continue
		}
		out.Windows = append(out.Windows, windowInfo(w))
	}
	s.logger.Debug("mcp list_windows", "count", len(out.Windows))
	return nil, out, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	route := strings.TrimSpace(args.Route)
	if route == "" {
		return nil, WindowOutput{}, fmt.Errorf("open_window: route is required")
	}
	w, err := s.desk.OpenWindow(ipc.OpenWindowPayload{
		Route:  route,
		Title:  args.Title,
		X:      args.X,
		Y:      args.Y,
		Width:  args.Width,
		Height: args.Height,
	})
	if err != nil {
		return nil, WindowOutput{}, err
	}
	s.logger.Info("mcp open_window", "route", route)
	return nil, windowOutput(w), nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRefInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	ref, err := requireWindow(args.Window, "close_window")
	if err != nil {
		return nil, CloseWindowOutput{}, err
	}
	if err := s.desk.CloseWindow(ref); err != nil {
		return nil, CloseWindowOutput{Closed: false}, err
	}
	s.logger.Info("mcp close_window", "window", ref)
	return nil, CloseWindowOutput{Closed: true}, nil
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MinimizeWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	ref, err := requireWindow(args.Window, "minimize_window")
	if err != nil {
		return nil, WindowOutput{}, err
	}
	animate := args.Animate == nil || *args.Animate
	w, err := s.desk.MinimizeWindow(ref, animate, nil)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, windowOutput(w), nil
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRefInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	ref, err := requireWindow(args.Window, "restore_window")
	if err != nil {
		return nil, WindowOutput{}, err
	}
	w, err := s.desk.RestoreWindow(ref)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, windowOutput(w), nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowRefInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	ref, err := requireWindow(args.Window, "focus_window")
	if err != nil {
		return nil, WindowOutput{}, err
	}
	w, err := s.desk.FocusWindow(ref)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, windowOutput(w), nil
}

func (s *Server) handleSetTheme(_ context.Context, _ *mcpsdk.CallToolRequest, args SetThemeInput) (*mcpsdk.CallToolResult, SetThemeOutput, error) {
	data, err := s.desk.SetTheme(strings.ToLower(strings.TrimSpace(args.Mode)))
	if err != nil {
		return nil, SetThemeOutput{}, err
	}
	return nil, SetThemeOutput{Mode: string(data.Mode), Resolved: string(data.Resolved)}, nil
}

func (s *Server) handleSetVibe(_ context.Context, _ *mcpsdk.CallToolRequest, args SetVibeInput) (*mcpsdk.CallToolResult, SetVibeOutput, error) {
	data, err := s.desk.SetVibe(strings.ToLower(strings.TrimSpace(args.Vibe)))
	if err != nil {
		return nil, SetVibeOutput{}, err
	}
	return nil, SetVibeOutput{
		Vibe:        data.Current,
		Name:        data.Name,
		PlaylistURL: data.PlaylistURL,
		Videos:      len(data.Playlist),
	}, nil
}
