package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/dxdesk/internal/desktop"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/theme"
	"github.com/1broseidon/dxdesk/internal/vibe"
	"github.com/1broseidon/dxdesk/internal/window"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload         CommandType = "RELOAD"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandOpenWindow     CommandType = "OPEN_WINDOW"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandRestoreWindow  CommandType = "RESTORE_WINDOW"
	CommandMaximizeWindow CommandType = "MAXIMIZE_WINDOW"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
	CommandMoveWindow     CommandType = "MOVE_WINDOW"
	CommandResizeWindow   CommandType = "RESIZE_WINDOW"
	CommandEnsureInBounds CommandType = "ENSURE_IN_BOUNDS"
	CommandSetChrome      CommandType = "SET_CHROME"
	CommandSetDockLayout  CommandType = "SET_DOCK_LAYOUT"
	CommandGetSettings    CommandType = "GET_SETTINGS"
	CommandSetSetting     CommandType = "SET_SETTING"
	CommandResetSettings  CommandType = "RESET_SETTINGS"
	CommandSetTheme       CommandType = "SET_THEME"
	CommandSetSystemDark  CommandType = "SET_SYSTEM_DARK"
	CommandSetBackground  CommandType = "SET_BACKGROUND"
	CommandListVibes      CommandType = "LIST_VIBES"
	CommandSetVibe        CommandType = "SET_VIBE"
	CommandDockPointer    CommandType = "DOCK_POINTER"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	desktop.Status
	UptimeSeconds int64 `json:"uptime_seconds"`
	DaemonRunning bool  `json:"daemon_running"`
}

// WindowsData is returned by LIST_WINDOWS.
type WindowsData struct {
	Windows []window.Window `json:"windows"`
}

// WindowData wraps a single window.
type WindowData struct {
	Window window.Window `json:"window"`
}

// OpenWindowPayload opens or focuses the window for a route.
type OpenWindowPayload struct {
	Route  string   `json:"route"`
	Title  string   `json:"title"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// WindowRefPayload names a window by id or route.
type WindowRefPayload struct {
	Window string `json:"window"`
}

// MinimizeWindowPayload minimizes a window, optionally animated towards
// an explicit dock point.
type MinimizeWindowPayload struct {
	Window  string        `json:"window"`
	Animate bool          `json:"animate,omitempty"`
	Target  *layout.Point `json:"target,omitempty"`
}

type MoveWindowPayload struct {
	Window string  `json:"window"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type ResizeWindowPayload struct {
	Window string  `json:"window"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SetDockLayoutPayload updates the dock icon metrics and, optionally, the
// registry-wide dock anchor.
type SetDockLayoutPayload struct {
	ItemWidth   float64       `json:"item_width"`
	ItemGap     float64       `json:"item_gap"`
	ItemOffsetY float64       `json:"item_offset_y"`
	Anchor      *layout.Point `json:"anchor,omitempty"`
}

type SetSettingPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NamePayload carries a theme mode, background id or vibe key.
type NamePayload struct {
	Name string `json:"name"`
}

type SystemDarkPayload struct {
	Dark bool `json:"dark"`
}

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DockData reports dock visibility after a pointer update.
type DockData struct {
	Visible bool `json:"visible"`
}

// SettingsData is returned by the settings commands.
type SettingsData struct {
	Settings settings.Settings `json:"settings"`
}

// ThemeData is returned by SET_THEME, SET_SYSTEM_DARK and SET_BACKGROUND.
type ThemeData struct {
	Mode       theme.Mode     `json:"mode"`
	Resolved   theme.Mode     `json:"resolved"`
	ClassName  string         `json:"class_name"`
	Palette    theme.Palette  `json:"palette"`
	Background theme.Gradient `json:"background"`
}

// VibesData is returned by LIST_VIBES and SET_VIBE.
type VibesData struct {
	Current     string        `json:"current"`
	Name        string        `json:"name"`
	PlaylistURL string        `json:"playlist_url"`
	Playlist    []vibe.Video  `json:"playlist"`
	Options     []vibe.Option `json:"options"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
