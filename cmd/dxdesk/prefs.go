package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/1broseidon/dxdesk/internal/chrome"
	"github.com/1broseidon/dxdesk/internal/dock"
	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/layout"
	"github.com/1broseidon/dxdesk/internal/settings"
	"github.com/1broseidon/dxdesk/internal/theme"
)

func runSettings(args []string) int {
	usage := func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  dxdesk settings print [--json]")
		fmt.Fprintln(os.Stderr, "  dxdesk settings set <key> <value>")
		fmt.Fprintln(os.Stderr, "  dxdesk settings reset")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Keys: %v\n", settings.Keys())
	}
	if len(args) == 0 || isHelp(args) {
		usage()
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "print":
		fs := flag.NewFlagSet("settings print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		asJSON := fs.Bool("json", false, "Print JSON")
		if rc := parseFlags(fs, args[1:]); rc >= 0 {
			return rc
		}
		s, err := client.GetSettings()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *asJSON {
			return printJSON(s)
		}
		printSettings(s)
		return 0

	case "set":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "set requires <key> <value>")
			return 2
		}
		s, err := client.SetSetting(args[1], args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		printSettings(s)
		return 0

	case "reset":
		s, err := client.ResetSettings()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		printSettings(s)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown settings command: %s\n\n", args[0])
		usage()
		return 2
	}
}

func printSettings(s settings.Settings) {
	fmt.Printf("theme:             %s\n", s.Theme)
	fmt.Printf("background:        %s\n", s.Background)
	fmt.Printf("dockPosition:      %s\n", s.DockPosition)
	fmt.Printf("showClock:         %v\n", s.ShowClock)
	fmt.Printf("dockMagnification: %v\n", s.DockMagnification)
	fmt.Printf("notifications:     %v\n", s.Notifications)
	fmt.Printf("soundEffects:      %v\n", s.SoundEffects)
	fmt.Printf("autoHideDock:      %v\n", s.AutoHideDock)
}

func runTheme(args []string) int {
	if isHelp(args) {
		fmt.Fprintln(os.Stdout, "Usage:")
		fmt.Fprintln(os.Stdout, "  dxdesk theme                 Show the theme")
		fmt.Fprintln(os.Stdout, "  dxdesk theme set <mode>      light, dark or auto")
		fmt.Fprintln(os.Stdout, "  dxdesk theme system <dark|light>")
		fmt.Fprintln(os.Stdout, "                               Report the system colour preference")
		return 0
	}

	client := ipc.NewClient()
	if len(args) == 0 {
		st, err := client.GetStatus()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("mode:     %s\n", st.Theme)
		fmt.Printf("resolved: %s\n", st.Resolved)
		return 0
	}

	var (
		data *ipc.ThemeData
		err  error
	)
	switch args[0] {
	case "set":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "theme set requires <mode>")
			return 2
		}
		data, err = client.SetTheme(args[1])
	case "system":
		if len(args) != 2 || (args[1] != "dark" && args[1] != "light") {
			fmt.Fprintln(os.Stderr, "theme system requires dark or light")
			return 2
		}
		data, err = client.SetSystemDark(args[1] == "dark")
	default:
		fmt.Fprintf(os.Stderr, "Unknown theme command: %s\n", args[0])
		return 2
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printTheme(data)
	return 0
}

func printTheme(t *ipc.ThemeData) {
	fmt.Printf("mode:       %s\n", t.Mode)
	fmt.Printf("resolved:   %s\n", t.Resolved)
	fmt.Printf("class:      %s\n", t.ClassName)
	fmt.Printf("background: %s\n", t.Background.ID)
	keys := make([]string, 0, len(t.Palette))
	for k := range t.Palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-16s %s\n", k, t.Palette[k])
	}
}

func runBackground(args []string) int {
	if len(args) == 0 || isHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  dxdesk background list")
		fmt.Fprintln(os.Stderr, "  dxdesk background set <id>")
		return 2
	}

	switch args[0] {
	case "list":
		current := ""
		if st, err := ipc.NewClient().GetStatus(); err == nil {
			current = st.Background
		}
		for _, g := range theme.Gradients() {
			marker := " "
			if g.ID == current {
				marker = "*"
			}
			fmt.Printf("%s %-12s %s\n", marker, g.ID, g.CSS)
		}
		return 0
	case "set":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "background set requires <id>")
			return 2
		}
		data, err := ipc.NewClient().SetBackground(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("%s %s\n", data.Background.ID, data.Background.CSS)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown background command: %s\n", args[0])
		return 2
	}
}

func runVibe(args []string) int {
	if len(args) == 0 || isHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  dxdesk vibe list [--json]")
		fmt.Fprintln(os.Stderr, "  dxdesk vibe set <key>")
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("vibe list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		asJSON := fs.Bool("json", false, "Print JSON")
		if rc := parseFlags(fs, args[1:]); rc >= 0 {
			return rc
		}
		data, err := client.ListVibes()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *asJSON {
			return printJSON(data)
		}
		printVibes(data)
		return 0
	case "set":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "vibe set requires <key>")
			return 2
		}
		data, err := client.SetVibe(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		printVibes(data)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown vibe command: %s\n", args[0])
		return 2
	}
}

func printVibes(v *ipc.VibesData) {
	for _, o := range v.Options {
		marker := " "
		if o.Value == v.Current {
			marker = "*"
		}
		fmt.Printf("%s %-10s %s\n", marker, o.Value, o.Label)
	}
	fmt.Printf("\nplaylist: %s\n", v.PlaylistURL)
}

func runChrome(args []string) int {
	if len(args) == 0 || isHelp(args) || args[0] != "set" {
		fmt.Fprintln(os.Stderr, "Usage: dxdesk chrome set --viewport WxH [--top-bar X,Y,W,H] [--dock X,Y,W,H] [--dock-container X,Y,W,H]")
		if isHelp(args) {
			return 0
		}
		return 2
	}

	fs := flag.NewFlagSet("chrome set", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	viewport := fs.String("viewport", "", "Viewport size WxH")
	topBar := fs.String("top-bar", "", "Top bar rect X,Y,W,H")
	dockRect := fs.String("dock", "", "Dock rect X,Y,W,H")
	container := fs.String("dock-container", "", "Dock icon container rect X,Y,W,H")
	if rc := parseFlags(fs, args[1:]); rc >= 0 {
		return rc
	}

	r, err := buildReport(*viewport, *topBar, *dockRect, *container)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	c, err := ipc.NewClient().SetChrome(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return printJSON(c)
}

// buildReport assembles a chrome report from CLI flag values. Empty rect
// flags leave that element unreported.
func buildReport(viewport, topBar, dockRect, container string) (chrome.Report, error) {
	var r chrome.Report
	if viewport == "" {
		return r, fmt.Errorf("--viewport is required")
	}
	sz, err := parseSize(viewport)
	if err != nil {
		return r, err
	}
	r.ViewportWidth, r.ViewportHeight = sz.Width, sz.Height

	for _, f := range []struct {
		val string
		dst **layout.Rect
	}{
		{topBar, &r.TopBar},
		{dockRect, &r.Dock},
		{container, &r.DockContainer},
	} {
		if f.val == "" {
			continue
		}
		rect, err := parseRect(f.val)
		if err != nil {
			return r, err
		}
		*f.dst = &rect
	}
	return r, nil
}

func runDock(args []string) int {
	if len(args) == 0 || isHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  dxdesk dock pointer <x> <y>")
		fmt.Fprintln(os.Stderr, "  dxdesk dock layout [--item-width N] [--item-gap N] [--item-offset-y N] [--anchor X,Y]")
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "pointer":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "pointer requires <x> <y>")
			return 2
		}
		x, errX := strconv.ParseFloat(args[1], 64)
		y, errY := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil {
			fmt.Fprintln(os.Stderr, "pointer coordinates must be numbers")
			return 2
		}
		visible, err := client.DockPointer(x, y)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("dock_visible: %v\n", visible)
		return 0

	case "layout":
		fs := flag.NewFlagSet("dock layout", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		def := dock.DefaultLayout()
		p := ipc.SetDockLayoutPayload{}
		fs.Float64Var(&p.ItemWidth, "item-width", def.ItemWidth, "Dock icon width")
		fs.Float64Var(&p.ItemGap, "item-gap", def.ItemGap, "Gap between dock icons")
		fs.Float64Var(&p.ItemOffsetY, "item-offset-y", def.ItemOffsetY, "Vertical offset of icon centres")
		anchor := fs.String("anchor", "", "Dock anchor X,Y for minimize targets")
		if rc := parseFlags(fs, args[1:]); rc >= 0 {
			return rc
		}
		if *anchor != "" {
			pt, err := parsePoint(*anchor)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 2
			}
			p.Anchor = &pt
		}
		if err := client.SetDockLayout(p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("ok")
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown dock command: %s\n", args[0])
		return 2
	}
}
