package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/dxdesk/internal/config"
	"github.com/1broseidon/dxdesk/internal/daemon"
	"github.com/1broseidon/dxdesk/internal/ipc"
	"github.com/1broseidon/dxdesk/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "chrome":
		os.Exit(runChrome(os.Args[2:]))
	case "dock":
		os.Exit(runDock(os.Args[2:]))
	case "settings":
		os.Exit(runSettings(os.Args[2:]))
	case "theme":
		os.Exit(runTheme(os.Args[2:]))
	case "background":
		os.Exit(runBackground(os.Args[2:]))
	case "vibe":
		os.Exit(runVibe(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dxdesk <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the dxdesk daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload the daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window list         List windows")
	fmt.Fprintln(w, "  window open         Open or focus the window for a route")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window minimize     Minimize a window to the dock")
	fmt.Fprintln(w, "  window restore      Restore a minimized window")
	fmt.Fprintln(w, "  window maximize     Toggle maximized state")
	fmt.Fprintln(w, "  window focus        Bring a window to the front")
	fmt.Fprintln(w, "  window move         Move a window")
	fmt.Fprintln(w, "  window resize       Resize a window")
	fmt.Fprintln(w, "  window fit          Pull every window back inside the viewport")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  chrome set          Report viewport, top bar and dock geometry")
	fmt.Fprintln(w, "  dock layout         Set dock icon metrics and anchor")
	fmt.Fprintln(w, "  dock pointer        Feed a pointer position to dock auto-hide")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  settings print      Print desktop settings")
	fmt.Fprintln(w, "  settings set        Change one setting")
	fmt.Fprintln(w, "  settings reset      Restore default settings")
	fmt.Fprintln(w, "  theme               Show or change the theme")
	fmt.Fprintln(w, "  background          List or change the background")
	fmt.Fprintln(w, "  vibe                List or change the vibe")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive TUI")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dxdesk <command> --help' for command-specific options.")
}

// isHelp reports whether args asks for help.
func isHelp(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}

// parseFlags parses args and maps the outcome to an exit code; -1 means
// continue.
func parseFlags(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	return -1
}

func printJSON(v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/dxdesk/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dxdesk daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the desktop engine in the foreground. SIGHUP reloads the config.")
	}
	if rc := parseFlags(fs, args); rc >= 0 {
		return rc
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	configPath, err := resolveConfigPath(*path)
	if err != nil {
		log.Printf("Failed to resolve config path: %v", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := daemon.New(ctx, configPath)
	if err != nil {
		log.Printf("Failed to start daemon: %v", err)
		return 1
	}
	log.Printf("Configuration loaded from %s", configPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for {
			select {
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					log.Println("Received SIGHUP, reloading config...")
					if err := d.Reload(); err != nil {
						log.Printf("Config reload failed: %v", err)
					}
					continue
				}
				cancel()
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := d.Run(ctx); err != nil {
		log.Printf("Daemon error: %v", err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dxdesk status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if rc := parseFlags(fs, args); rc >= 0 {
		return rc
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(status)
	}
	fmt.Printf("daemon_running:  %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds:  %d\n", status.UptimeSeconds)
	fmt.Printf("windows:         %d (visible %d, minimized %d, animating %d)\n",
		status.Windows, status.Visible, status.Minimized, status.Animating)
	fmt.Printf("theme:           %s (%s)\n", status.Theme, status.Resolved)
	fmt.Printf("background:      %s\n", status.Background)
	fmt.Printf("vibe:            %s\n", status.Vibe)
	fmt.Printf("dock_visible:    %v\n", status.DockVisible)
	fmt.Printf("viewport:        %.0fx%.0f (measured %v)\n", status.Viewport.Width, status.Viewport.Height, status.Measured)
	fmt.Printf("backend:         %s\n", status.Backend)
	return 0
}

func runReload(args []string) int {
	if isHelp(args) {
		fmt.Fprintln(os.Stdout, "Usage: dxdesk reload")
		return 0
	}
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		return 2
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("reloaded")
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || isHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  dxdesk config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  dxdesk config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/dxdesk/config.yaml)")
		if rc := parseFlags(fs, args[1:]); rc >= 0 {
			return rc
		}
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, describeConfigError(err))
			return 1
		}
		if !res.Exists {
			fmt.Printf("config: ok (no file at %s, using defaults)\n", res.Path)
			return 0
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/dxdesk/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if rc := parseFlags(fs, args[1:]); rc >= 0 {
			return rc
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, describeConfigError(err))
				return 1
			}
			cfg = res.Config
			fmt.Printf("# source: %s\n", res.Path)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func loadConfig(path string) (*config.LoadResult, error) {
	p, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(p)
}

// describeConfigError adds the offending key and location to validation
// failures.
func describeConfigError(err error) string {
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	return fmt.Sprintf("invalid config: %s (at %s): %v", verr.Path, formatSource(verr.Source), verr.Err)
}

func formatSource(src config.Source) string {
	switch {
	case src.File == "":
		return "default"
	case src.Line > 0:
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	default:
		return src.File
	}
}

func runTUI(args []string) int {
	if isHelp(args) {
		fmt.Fprintln(os.Stderr, "Usage: dxdesk tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive TUI for the running daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab, 1-3      Switch between Windows, Settings and Vibes")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓      Navigate lists")
		fmt.Fprintln(os.Stderr, "  enter, f      Focus window / select vibe")
		fmt.Fprintln(os.Stderr, "  m, r, z, c    Minimize, restore, maximize, close window")
		fmt.Fprintln(os.Stderr, "  e             Edit settings")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C     Quit")
		return 0
	}
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		return 2
	}

	if err := tui.Run(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
