package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/dxdesk/internal/chrome"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/runtimepath"
	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/window"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends cmd with an optional payload and decodes the reply into out
// when out is non-nil.
func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

func (c *Client) windowCall(cmd CommandType, payload any) (*window.Window, error) {
	var data WindowData
	var raw json.RawMessage
	if err := c.call(cmd, payload, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse window data: %w", err)
	}
	return &data.Window, nil
}

// Reload asks the daemon to re-read its config file.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows returns every open window.
func (c *Client) ListWindows() ([]window.Window, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// OpenWindow opens the window for a route, or focuses the existing one.
func (c *Client) OpenWindow(p OpenWindowPayload) (*window.Window, error) {
	return c.windowCall(CommandOpenWindow, p)
}

// CloseWindow closes a window by id or route.
func (c *Client) CloseWindow(ref string) error {
	return c.call(CommandCloseWindow, WindowRefPayload{Window: ref}, nil)
}

// MinimizeWindow sends a window to the dock.
func (c *Client) MinimizeWindow(ref string, animate bool, target *layout.Point) (*window.Window, error) {
	return c.windowCall(CommandMinimizeWindow, MinimizeWindowPayload{Window: ref, Animate: animate, Target: target})
}

// RestoreWindow brings a minimized window back.
func (c *Client) RestoreWindow(ref string) (*window.Window, error) {
	return c.windowCall(CommandRestoreWindow, WindowRefPayload{Window: ref})
}

// MaximizeWindow toggles the maximized flag.
func (c *Client) MaximizeWindow(ref string) (*window.Window, error) {
	return c.windowCall(CommandMaximizeWindow, WindowRefPayload{Window: ref})
}

// FocusWindow raises a window.
func (c *Client) FocusWindow(ref string) (*window.Window, error) {
	return c.windowCall(CommandFocusWindow, WindowRefPayload{Window: ref})
}

func (c *Client) MoveWindow(ref string, x, y float64) (*window.Window, error) {
	return c.windowCall(CommandMoveWindow, MoveWindowPayload{Window: ref, X: x, Y: y})
}

func (c *Client) ResizeWindow(ref string, width, height float64) (*window.Window, error) {
	return c.windowCall(CommandResizeWindow, ResizeWindowPayload{Window: ref, Width: width, Height: height})
}

// EnsureInBounds re-clamps every window to the current chrome.
func (c *Client) EnsureInBounds() ([]window.Window, error) {
	var data WindowsData
	if err := c.call(CommandEnsureInBounds, nil, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// SetChrome reports measured chrome geometry.
func (c *Client) SetChrome(r chrome.Report) (*layout.Chrome, error) {
	var out layout.Chrome
	if err := c.call(CommandSetChrome, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetDockLayout(p SetDockLayoutPayload) error {
	return c.call(CommandSetDockLayout, p, nil)
}

func (c *Client) GetSettings() (settings.Settings, error) {
	var data SettingsData
	err := c.call(CommandGetSettings, nil, &data)
	return data.Settings, err
}

func (c *Client) SetSetting(key, value string) (settings.Settings, error) {
	var data SettingsData
	err := c.call(CommandSetSetting, SetSettingPayload{Key: key, Value: value}, &data)
	return data.Settings, err
}

func (c *Client) ResetSettings() (settings.Settings, error) {
	var data SettingsData
	err := c.call(CommandResetSettings, nil, &data)
	return data.Settings, err
}

// SetTheme selects light, dark or auto.
func (c *Client) SetTheme(mode string) (*ThemeData, error) {
	var data ThemeData
	if err := c.call(CommandSetTheme, NamePayload{Name: mode}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SetSystemDark reports the host's dark-mode preference.
func (c *Client) SetSystemDark(dark bool) (*ThemeData, error) {
	var data ThemeData
	if err := c.call(CommandSetSystemDark, SystemDarkPayload{Dark: dark}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) SetBackground(id string) (*ThemeData, error) {
	var data ThemeData
	if err := c.call(CommandSetBackground, NamePayload{Name: id}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ListVibes() (*VibesData, error) {
	var data VibesData
	if err := c.call(CommandListVibes, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) SetVibe(key string) (*VibesData, error) {
	var data VibesData
	if err := c.call(CommandSetVibe, NamePayload{Name: key}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DockPointer reports a pointer position and returns dock visibility.
func (c *Client) DockPointer(x, y float64) (bool, error) {
	var data DockData
	err := c.call(CommandDockPointer, PointerPayload{X: x, Y: y}, &data)
	return data.Visible, err
}
