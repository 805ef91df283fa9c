package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/window"
)

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dxdesk window list [--json]")
	fmt.Fprintln(w, "  dxdesk window open [--title T] [--pos X,Y] [--size WxH] <route>")
	fmt.Fprintln(w, "  dxdesk window close <window>")
	fmt.Fprintln(w, "  dxdesk window minimize [--instant] [--to X,Y] <window>")
	fmt.Fprintln(w, "  dxdesk window restore <window>")
	fmt.Fprintln(w, "  dxdesk window maximize <window>")
	fmt.Fprintln(w, "  dxdesk window focus <window>")
	fmt.Fprintln(w, "  dxdesk window move <window> <x> <y>")
	fmt.Fprintln(w, "  dxdesk window resize <window> <width> <height>")
	fmt.Fprintln(w, "  dxdesk window fit")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "<window> is a window id or its route.")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}
	if isHelp(args) {
		printWindowUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()
	rest := args[1:]
	switch args[0] {
	case "list":
		return runWindowList(client, rest)
	case "open":
		return runWindowOpen(client, rest)
	case "minimize":
		return runWindowMinimize(client, rest)
	case "close":
		return withRef("close", rest, func(ref string) (*window.Window, error) {
			return nil, client.CloseWindow(ref)
		})
	case "restore":
		return withRef("restore", rest, client.RestoreWindow)
	case "maximize":
		return withRef("maximize", rest, client.MaximizeWindow)
	case "focus":
		return withRef("focus", rest, client.FocusWindow)
	case "move":
		return runWindowPair("move", rest, client.MoveWindow)
	case "resize":
		return runWindowPair("resize", rest, client.ResizeWindow)
	case "fit":
		if len(rest) != 0 {
			fmt.Fprintln(os.Stderr, "fit takes no arguments")
			return 2
		}
		ws, err := client.EnsureInBounds()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		printWindowTable(os.Stdout, ws)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func runWindowList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("window list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	if rc := parseFlags(fs, args); rc >= 0 {
		return rc
	}
	ws, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(ws)
	}
	printWindowTable(os.Stdout, ws)
	return 0
}

func runWindowOpen(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("window open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	title := fs.String("title", "", "Window title (default: the route)")
	pos := fs.String("pos", "", "Requested position X,Y")
	size := fs.String("size", "", "Requested size WxH")
	if rc := parseFlags(fs, args); rc >= 0 {
		return rc
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "open requires exactly one <route>")
		return 2
	}

	p := ipc.OpenWindowPayload{Route: fs.Arg(0), Title: *title}
	if p.Title == "" {
		p.Title = p.Route
	}
	if *pos != "" {
		pt, err := parsePoint(*pos)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		p.X, p.Y = &pt.X, &pt.Y
	}
	if *size != "" {
		sz, err := parseSize(*size)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		p.Width, p.Height = &sz.Width, &sz.Height
	}

	w, err := client.OpenWindow(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindowLine(w)
	return 0
}

func runWindowMinimize(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("window minimize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	instant := fs.Bool("instant", false, "Skip the genie animation")
	to := fs.String("to", "", "Dock target X,Y (default: the window's dock slot)")
	if rc := parseFlags(fs, args); rc >= 0 {
		return rc
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "minimize requires exactly one <window>")
		return 2
	}
	var target *layout.Point
	if *to != "" {
		pt, err := parsePoint(*to)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		target = &pt
	}
	w, err := client.MinimizeWindow(fs.Arg(0), !*instant, target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindowLine(w)
	return 0
}

func withRef(name string, args []string, fn func(string) (*window.Window, error)) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one <window>\n", name)
		return 2
	}
	w, err := fn(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindowLine(w)
	return 0
}

func runWindowPair(name string, args []string, fn func(string, float64, float64) (*window.Window, error)) int {
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "%s requires <window> and two numbers\n", name)
		return 2
	}
	a, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid number %q\n", args[1])
		return 2
	}
	b, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid number %q\n", args[2])
		return 2
	}
	w, err := fn(args[0], a, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printWindowLine(w)
	return 0
}

func windowState(w window.Window) string {
	var parts []string
	if w.Animation != nil {
		parts = append(parts, string(w.Animation.Direction))
	}
	if w.IsMinimized {
		parts = append(parts, "minimized")
	}
	if w.IsMaximized {
		parts = append(parts, "maximized")
	}
	if len(parts) == 0 {
		return "normal"
	}
	return strings.Join(parts, ",")
}

func printWindowLine(w *window.Window) {
	if w == nil {
		fmt.Println("ok")
		return
	}
	fmt.Printf("%s %s %q %.0fx%.0f@%.0f,%.0f z=%d %s\n",
		w.ID, w.Route, w.Title, w.Width, w.Height, w.X, w.Y, w.ZIndex, windowState(*w))
}

func printWindowTable(out io.Writer, ws []window.Window) {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROUTE\tTITLE\tGEOMETRY\tZ\tSTATE")
	for _, w := range ws {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0fx%.0f@%.0f,%.0f\t%d\t%s\n",
			w.ID, w.Route, w.Title, w.Width, w.Height, w.X, w.Y, w.ZIndex, windowState(w))
	}
	tw.Flush()
}

// parsePoint parses "X,Y".
func parsePoint(s string) (layout.Point, error) {
	v, err := parseFloats(s, ",", 2)
	if err != nil {
		return layout.Point{}, fmt.Errorf("invalid point %q: expected X,Y", s)
	}
	return layout.Point{X: v[0], Y: v[1]}, nil
}

// parseSize parses "WxH" with positive dimensions.
func parseSize(s string) (layout.Size, error) {
	v, err := parseFloats(strings.ToLower(s), "x", 2)
	if err != nil || v[0] <= 0 || v[1] <= 0 {
		return layout.Size{}, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	return layout.Size{Width: v[0], Height: v[1]}, nil
}

// parseRect parses "X,Y,W,H".
func parseRect(s string) (layout.Rect, error) {
	v, err := parseFloats(s, ",", 4)
	if err != nil || v[2] < 0 || v[3] < 0 {
		return layout.Rect{}, fmt.Errorf("invalid rect %q: expected X,Y,W,H", s)
	}
	return layout.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func parseFloats(s, sep string, n int) ([]float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d values", n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
