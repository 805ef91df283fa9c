package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Screen is one RandR monitor plus the edges reserved by panels and docks
type Screen struct {
	ID       int
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	Reserved Struts
}

// Struts are the pixel bands panels reserve along each edge of a screen
type Struts struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

func (s Struts) empty() bool {
	return s.Left == 0 && s.Right == 0 && s.Top == 0 && s.Bottom == 0
}

// Screens lists active monitors via XRandR, with reserved struts filled in
func (c *Connection) Screens() ([]Screen, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var screens []Screen
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		screens = append(screens, Screen{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	partials := c.dockStruts()
	if len(partials) > 0 {
		rootW, rootH := c.rootSize()
		for i := range screens {
			for _, sp := range partials {
				if r := reservedOn(screens[i], rootW, rootH, sp); !r.empty() {
					screens[i].Reserved = mergeStruts(screens[i].Reserved, r)
				}
			}
		}
	}
	return screens, nil
}

// ActiveScreen returns the screen under the focused window, then the
// pointer, then the first screen
func (c *Connection) ActiveScreen() (Screen, error) {
	screens, err := c.Screens()
	if err != nil {
		return Screen{}, err
	}
	if len(screens) == 0 {
		return Screen{}, fmt.Errorf("no monitors found")
	}

	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if x, y, ok := c.windowCenter(win); ok {
			if s, ok := screenAt(screens, x, y); ok {
				return s, nil
			}
		}
	}
	if ptr, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if s, ok := screenAt(screens, int(ptr.RootX), int(ptr.RootY)); ok {
			return s, nil
		}
	}
	return screens[0], nil
}

func (c *Connection) rootSize() (int, int) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0
	}
	return int(geom.Width), int(geom.Height)
}

func (c *Connection) windowCenter(win xproto.Window) (int, int, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, false
	}
	tr, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(tr.DstX) + int(geom.Width)/2, int(tr.DstY) + int(geom.Height)/2, true
}

// dockStruts collects the strut partials of every _NET_WM_WINDOW_TYPE_DOCK
// client. Docks that only set _NET_WM_STRUT span the full root edge.
func (c *Connection) dockStruts() []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}
	rootW, rootH := c.rootSize()

	var out []ewmh.WmStrutPartial
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil || !hasType(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			out = append(out, *sp)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			out = append(out, fullEdgeStrut(s, rootW, rootH))
		}
	}
	return out
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func fullEdgeStrut(s *ewmh.WmStrut, rootW, rootH int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(rootH - 1),
		RightEndY:  uint(rootH - 1),
		TopEndX:    uint(rootW - 1),
		BottomEndX: uint(rootW - 1),
	}
}

func screenAt(screens []Screen, x, y int) (Screen, bool) {
	for _, s := range screens {
		if x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Height {
			return s, true
		}
	}
	return Screen{}, false
}

type band struct {
	x1, y1, x2, y2 int
}

func (b band) overlap(o band) (w, h int) {
	x1, y1 := max(b.x1, o.x1), max(b.y1, o.y1)
	x2, y2 := min(b.x2, o.x2), min(b.y2, o.y2)
	if x2 <= x1 || y2 <= y1 {
		return 0, 0
	}
	return x2 - x1, y2 - y1
}

// reservedOn projects a root-relative strut partial onto one screen.
func reservedOn(s Screen, rootW, rootH int, sp ewmh.WmStrutPartial) Struts {
	screen := band{s.X, s.Y, s.X + s.Width, s.Y + s.Height}
	var out Struts
	if sp.Top > 0 {
		if _, h := screen.overlap(band{int(sp.TopStartX), 0, int(sp.TopEndX) + 1, int(sp.Top)}); h > 0 {
			out.Top = h
		}
	}
	if sp.Bottom > 0 {
		if _, h := screen.overlap(band{int(sp.BottomStartX), rootH - int(sp.Bottom), int(sp.BottomEndX) + 1, rootH}); h > 0 {
			out.Bottom = h
		}
	}
	if sp.Left > 0 {
		if w, _ := screen.overlap(band{0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY) + 1}); w > 0 {
			out.Left = w
		}
	}
	if sp.Right > 0 {
		if w, _ := screen.overlap(band{rootW - int(sp.Right), int(sp.RightStartY), rootW, int(sp.RightEndY) + 1}); w > 0 {
			out.Right = w
		}
	}
	return out
}

func mergeStruts(a, b Struts) Struts {
	return Struts{
		Left:   max(a.Left, b.Left),
		Right:  max(a.Right, b.Right),
		Top:    max(a.Top, b.Top),
		Bottom: max(a.Bottom, b.Bottom),
	}
}
