package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/dxdesk/internal/chrome"
	"github.com/1broseidon/dxdesk/internal/desktop"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/runtimepath"
	"github.com/1broseidon/dxdesk/internal/theme"
	"github.com/1broseidon/dxdesk/internal/vibe"
	"github.com/1broseidon/dxdesk/internal/window"
)

// ReloadFunc reloads the configuration from disk and applies it.
type ReloadFunc func() error

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	desk         *desktop.Desktop
	reload       ReloadFunc
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a server on the default socket path.
func NewServer(desk *desktop.Desktop, reload ReloadFunc) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, desk, reload), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, desk *desktop.Desktop, reload ReloadFunc) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		desk:       desk,
		reload:     reload,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves a single newline-terminated request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return ok(WindowsData{Windows: s.desk.Windows.Windows()})
	case CommandOpenWindow:
		return s.handleOpenWindow(req.Payload)
	case CommandCloseWindow:
		return s.withWindow(req.Payload, func(id string) { s.desk.Windows.Close(id) })
	case CommandMinimizeWindow:
		return s.handleMinimizeWindow(req.Payload)
	case CommandRestoreWindow:
		return s.withWindow(req.Payload, s.desk.Windows.Restore)
	case CommandMaximizeWindow:
		return s.withWindow(req.Payload, s.desk.Windows.Maximize)
	case CommandFocusWindow:
		return s.withWindow(req.Payload, s.desk.Windows.BringToFront)
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	case CommandResizeWindow:
		return s.handleResizeWindow(req.Payload)
	case CommandEnsureInBounds:
		s.desk.Windows.EnsureInBounds()
		return ok(WindowsData{Windows: s.desk.Windows.Windows()})
	case CommandSetChrome:
		return s.handleSetChrome(req.Payload)
	case CommandSetDockLayout:
		return s.handleSetDockLayout(req.Payload)
	case CommandGetSettings:
		return ok(SettingsData{Settings: s.desk.Settings.Get()})
	case CommandSetSetting:
		return s.handleSetSetting(req.Payload)
	case CommandResetSettings:
		return ok(SettingsData{Settings: s.desk.Settings.Reset()})
	case CommandSetTheme:
		return s.handleNamed(req.Payload, s.desk.SetTheme, s.themeData)
	case CommandSetSystemDark:
		return s.handleSetSystemDark(req.Payload)
	case CommandSetBackground:
		return s.handleNamed(req.Payload, s.desk.SetBackground, s.themeData)
	case CommandListVibes:
		return ok(s.vibesData())
	case CommandSetVibe:
		return s.handleNamed(req.Payload, s.desk.SetVibe, func() any { return s.vibesData() })
	case CommandDockPointer:
		return s.handleDockPointer(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// resolveWindow accepts a window id or a route.
func (s *Server) resolveWindow(ref string) (window.Window, error) {
	if ref == "" {
		return window.Window{}, fmt.Errorf("window is required")
	}
	if w, found := s.desk.Windows.Get(ref); found {
		return w, nil
	}
	if w, found := s.desk.Windows.ByRoute(ref); found {
		return w, nil
	}
	return window.Window{}, fmt.Errorf("window not found: %s", ref)
}

// windowResult reports the window after an operation, or nothing if it
// was closed.
func (s *Server) windowResult(id string) *Response {
	w, found := s.desk.Windows.Get(id)
	if !found {
		return ok(nil)
	}
	return ok(WindowData{Window: w})
}

func (s *Server) withWindow(payload json.RawMessage, fn func(id string)) *Response {
	var p WindowRefPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	w, err := s.resolveWindow(p.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	fn(w.ID)
	return s.windowResult(w.ID)
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")
	if s.reload == nil {
		return NewErrorResponse("reload is not available")
	}
	if err := s.reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	log.Println("IPC: Config reloaded successfully")
	return ok(nil)
}

func (s *Server) handleGetStatus() *Response {
	return ok(StatusData{
		Status:        s.desk.Status(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	})
}

func (s *Server) handleOpenWindow(payload json.RawMessage) *Response {
	var p OpenWindowPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if p.Route == "" {
		return NewErrorResponse("route is required")
	}
	title := p.Title
	if title == "" {
		title = p.Route
	}
	id := s.desk.Windows.Open(p.Route, title, window.Options{
		X: p.X, Y: p.Y, Width: p.Width, Height: p.Height,
	})
	return s.windowResult(id)
}

func (s *Server) handleMinimizeWindow(payload json.RawMessage) *Response {
	var p MinimizeWindowPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	w, err := s.resolveWindow(p.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if p.Animate {
		s.desk.Windows.MinimizeWithAnimation(w.ID, p.Target)
	} else {
		s.desk.Windows.Minimize(w.ID)
	}
	return s.windowResult(w.ID)
}

func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var p MoveWindowPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	w, err := s.resolveWindow(p.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	s.desk.Windows.UpdatePosition(w.ID, p.X, p.Y)
	return s.windowResult(w.ID)
}

func (s *Server) handleResizeWindow(payload json.RawMessage) *Response {
	var p ResizeWindowPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if p.Width <= 0 || p.Height <= 0 {
		return NewErrorResponse("width and height must be > 0")
	}
	w, err := s.resolveWindow(p.Window)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	size := layout.ClampSize(s.desk.Chrome.Chrome(), layout.Size{Width: p.Width, Height: p.Height}, s.desk.Config().LayoutPolicy())
	s.desk.Windows.SmoothResize(w.ID, size.Width, size.Height)
	// Re-clamp the position against the new size.
	s.desk.Windows.UpdatePosition(w.ID, w.X, w.Y)
	return s.windowResult(w.ID)
}

func (s *Server) handleSetChrome(payload json.RawMessage) *Response {
	var r chrome.Report
	if err := decodePayload(payload, &r); err != nil {
		return NewErrorResponse(err.Error())
	}
	if r.ViewportWidth < 0 || r.ViewportHeight < 0 {
		return NewErrorResponse("viewport dimensions must be >= 0")
	}
	s.desk.ApplyChrome(r)
	return ok(s.desk.Chrome.Chrome())
}

func (s *Server) handleSetDockLayout(payload json.RawMessage) *Response {
	var p SetDockLayoutPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if p.ItemWidth <= 0 || p.ItemGap < 0 {
		return NewErrorResponse("item_width must be > 0 and item_gap >= 0")
	}
	s.desk.Chrome.SetDockMetrics(p.ItemWidth, p.ItemGap, p.ItemOffsetY)
	if p.Anchor != nil {
		s.desk.Windows.SetDockAnchor(*p.Anchor)
	}
	return ok(s.desk.Chrome.DockLayout())
}

func (s *Server) handleSetSetting(payload json.RawMessage) *Response {
	var p SetSettingPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	next, err := s.desk.Settings.Set(p.Key, p.Value)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(SettingsData{Settings: next})
}

func (s *Server) handleNamed(payload json.RawMessage, set func(string) error, result func() any) *Response {
	var p NamePayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := set(p.Name); err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(result())
}

func (s *Server) handleSetSystemDark(payload json.RawMessage) *Response {
	var p SystemDarkPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	s.desk.Theme.SetSystemPreference(p.Dark)
	return ok(s.themeData())
}

func (s *Server) handleDockPointer(payload json.RawMessage) *Response {
	var p PointerPayload
	if err := decodePayload(payload, &p); err != nil {
		return NewErrorResponse(err.Error())
	}
	return ok(DockData{Visible: s.desk.DockPointer(p.X, p.Y)})
}

func (s *Server) themeData() any {
	resolved := s.desk.Theme.Current()
	return ThemeData{
		Mode:       s.desk.Theme.Mode(),
		Resolved:   resolved,
		ClassName:  theme.ClassName(resolved),
		Palette:    s.desk.Theme.Palette(),
		Background: s.desk.Background.Gradient(),
	}
}

func (s *Server) vibesData() VibesData {
	cur := s.desk.Vibes.Current()
	return VibesData{
		Current:     cur.Key,
		Name:        cur.Name,
		PlaylistURL: cur.PlaylistURL,
		Playlist:    cur.Playlist,
		Options:     vibe.Options(),
	}
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
