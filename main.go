package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/nui-context-menu/internal/app"
	"github.com/atomicstack/nui-context-menu/internal/config"
	"github.com/atomicstack/nui-context-menu/internal/host"
	"github.com/atomicstack/nui-context-menu/internal/logging"
	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles the resolved configuration, the transports that
// will feed commands, and the terminal the menu is drawn on.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	timings := cfg.App.Timings
	if timings == (session.Timings{}) {
		timings = session.DefaultTimings()
	}
	geometry := cfg.App.Geometry
	if geometry == (placement.Geometry{}) {
		geometry = placement.DefaultGeometry()
	}

	payload := map[string]interface{}{
		"argv":        cfg.Args,
		"flags":       flags,
		"config":      cfg,
		"configFile":  cfg.File,
		"logPath":     logging.Path(),
		"transports":  activeTransports(cfg.App),
		"notifyURL":   cfg.App.NotifyURL,
		"exitOnClose": cfg.App.ExitOnClose,
		"timings": map[string]string{
			"hoverOpen":      timings.HoverOpen.String(),
			"hoverClose":     timings.HoverClose.String(),
			"teardown":       timings.Teardown.String(),
			"selectFeedback": timings.SelectFeedback.String(),
			"frame":          timings.Frame.String(),
		},
		"geometry": geometry,
		"terminal": describeTerminal(),
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

// activeTransports lists the command sources app.Run will start, in the order
// their commands can first arrive.
func activeTransports(cfg app.Config) []string {
	var out []string
	if cfg.OpenFile != "" {
		out = append(out, "file:"+cfg.OpenFile)
	}
	if cfg.Stdin {
		out = append(out, "stdin")
	}
	if cfg.Listen != "" {
		out = append(out, "websocket:ws://"+cfg.Listen+host.CommandPath)
	}
	return out
}

type terminalInfo struct {
	Size        *terminalSize    `json:"size,omitempty"`
	Descriptors []descriptorInfo `json:"descriptors"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type descriptorInfo struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

// describeTerminal reports which standard descriptors are terminals. The first
// one with a readable size is what the menu canvas starts from.
func describeTerminal() terminalInfo {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	info := terminalInfo{Descriptors: make([]descriptorInfo, 0, len(files))}
	for i, f := range files {
		d := describeDescriptor(names[i], int(f.Fd()))
		if info.Size == nil && d.Terminal && d.Error == "" {
			info.Size = &terminalSize{Source: d.Name, Width: d.Width, Height: d.Height}
		}
		info.Descriptors = append(info.Descriptors, d)
	}
	return info
}

func describeDescriptor(name string, fd int) descriptorInfo {
	d := descriptorInfo{Name: name}
	if fd < 0 || !term.IsTerminal(fd) {
		return d
	}
	d.Terminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		d.Error = err.Error()
		return d
	}
	d.Width, d.Height = width, height
	return d
}
