package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/atomicstack/nui-context-menu/internal/app"
	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	appName = "nui-context-menu"

	defaultNotifyURL = "https://nbl-target"

	envConfig         = "CONTEXT_MENU_CONFIG"
	envNotifyURL      = "CONTEXT_MENU_NOTIFY_URL"
	envNotifyTimeout  = "CONTEXT_MENU_NOTIFY_TIMEOUT"
	envListen         = "CONTEXT_MENU_LISTEN"
	envOrigins        = "CONTEXT_MENU_ORIGINS"
	envStdin          = "CONTEXT_MENU_STDIN"
	envOpen           = "CONTEXT_MENU_OPEN"
	envExitOnClose    = "CONTEXT_MENU_EXIT_ON_CLOSE"
	envHoverOpen      = "CONTEXT_MENU_HOVER_OPEN_DELAY"
	envHoverClose     = "CONTEXT_MENU_HOVER_CLOSE_DELAY"
	envTeardown       = "CONTEXT_MENU_TEARDOWN_DELAY"
	envSelectFeedback = "CONTEXT_MENU_SELECT_DELAY"
	envPanelWidth     = "CONTEXT_MENU_PANEL_WIDTH"
	envTrace          = "CONTEXT_MENU_TRACE"
	envLogFile        = "CONTEXT_MENU_LOG_FILE"
)

// fileConfig is the TOML layout. Durations are Go duration strings.
type fileConfig struct {
	NotifyURL     string   `toml:"notify_url"`
	NotifyTimeout string   `toml:"notify_timeout"`
	Listen        string   `toml:"listen"`
	Origins       []string `toml:"origins"`
	Stdin         *bool    `toml:"stdin"`
	ExitOnClose   *bool    `toml:"exit_on_close"`
	LogFile       string   `toml:"log_file"`
	Trace         *bool    `toml:"trace"`

	Timings struct {
		HoverOpen      string `toml:"hover_open"`
		HoverClose     string `toml:"hover_close"`
		Teardown       string `toml:"teardown"`
		SelectFeedback string `toml:"select_feedback"`
	} `toml:"timings"`

	Geometry placement.Geometry `toml:"geometry"`
}

// DefaultPath is where the optional config file is looked up.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path, explicit := configPath(args, env)
	file, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	defaults := session.DefaultTimings()
	geometry := mergeGeometry(placement.DefaultGeometry(), file.Geometry)

	fileTimings, err := file.timings(defaults)
	if err != nil {
		return Config{}, err
	}
	fileTimeout, err := parseDuration("notify_timeout", file.NotifyTimeout, 0)
	if err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	flags.SetOutput(new(strings.Builder))

	flags.String("config", path, "path to the TOML config file")
	notifyURL := flags.String("notify-url", envOrDefault(env, envNotifyURL, orString(file.NotifyURL, defaultNotifyURL)), "base URL notifications are posted to")
	notifyTimeout := flags.Duration("notify-timeout", envOrDuration(env, envNotifyTimeout, fileTimeout), "timeout for one notification request (0 uses the default)")
	listen := flags.String("listen", envOrDefault(env, envListen, file.Listen), "address for the WebSocket command endpoint (empty disables it)")
	origins := flags.String("origins", envOrDefault(env, envOrigins, strings.Join(file.Origins, ",")), "comma-separated origin patterns allowed to connect")
	stdin := flags.Bool("stdin", envOrBool(env, envStdin, orBool(file.Stdin, false)), "read newline-delimited JSON commands from stdin")
	open := flags.String("open", envOrDefault(env, envOpen, ""), "JSON command file applied at startup")
	exitOnClose := flags.Bool("exit-on-close", envOrBool(env, envExitOnClose, orBool(file.ExitOnClose, false)), "quit after the menu closes")
	hoverOpen := flags.Duration("hover-open-delay", envOrDuration(env, envHoverOpen, fileTimings.HoverOpen), "hover delay before a submenu opens")
	hoverClose := flags.Duration("hover-close-delay", envOrDuration(env, envHoverClose, fileTimings.HoverClose), "delay before a submenu closes after the pointer leaves")
	teardown := flags.Duration("teardown-delay", envOrDuration(env, envTeardown, fileTimings.Teardown), "length of the close animation")
	selectDelay := flags.Duration("select-delay", envOrDuration(env, envSelectFeedback, fileTimings.SelectFeedback), "click feedback shown before select is sent")
	panelWidth := flags.Int("panel-width", envOrInt(env, envPanelWidth, geometry.PanelWidth), "panel width in cells")
	trace := flags.Bool("trace", envOrBool(env, envTrace, orBool(file.Trace, false)), "enable verbose JSON trace logging")
	logFile := flags.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if *panelWidth < 4 {
		return Config{}, fmt.Errorf("panel-width must be >= 4 (got %d)", *panelWidth)
	}
	for name, d := range map[string]time.Duration{
		"hover-open-delay":  *hoverOpen,
		"hover-close-delay": *hoverClose,
		"teardown-delay":    *teardown,
		"select-delay":      *selectDelay,
		"notify-timeout":    *notifyTimeout,
	} {
		if d < 0 {
			return Config{}, fmt.Errorf("%s must be >= 0 (got %s)", name, d)
		}
	}
	geometry.PanelWidth = *panelWidth

	timings := defaults
	timings.HoverOpen = *hoverOpen
	timings.HoverClose = *hoverClose
	timings.Teardown = *teardown
	timings.SelectFeedback = *selectDelay

	cfg := Config{
		App: app.Config{
			NotifyURL:     *notifyURL,
			NotifyTimeout: *notifyTimeout,
			Listen:        *listen,
			Origins:       splitList(*origins),
			Stdin:         *stdin,
			OpenFile:      *open,
			ExitOnClose:   *exitOnClose,
			Timings:       timings,
			Geometry:      geometry,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"notifyURL":   *notifyURL,
			"listen":      *listen,
			"stdin":       strconv.FormatBool(*stdin),
			"open":        *open,
			"exitOnClose": strconv.FormatBool(*exitOnClose),
			"panelWidth":  strconv.Itoa(*panelWidth),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath finds the config file before flags are parsed, since the file
// supplies the flag defaults.
func configPath(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v, ok := env[envConfig]; ok && v != "" {
		return v, true
	}
	return DefaultPath(), false
}

// readFile loads path. A missing file is only an error when it was asked for.
func readFile(path string, explicit bool) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

func (fc fileConfig) timings(defaults session.Timings) (session.Timings, error) {
	t := defaults
	var err error
	if t.HoverOpen, err = parseDuration("timings.hover_open", fc.Timings.HoverOpen, t.HoverOpen); err != nil {
		return t, err
	}
	if t.HoverClose, err = parseDuration("timings.hover_close", fc.Timings.HoverClose, t.HoverClose); err != nil {
		return t, err
	}
	if t.Teardown, err = parseDuration("timings.teardown", fc.Timings.Teardown, t.Teardown); err != nil {
		return t, err
	}
	if t.SelectFeedback, err = parseDuration("timings.select_feedback", fc.Timings.SelectFeedback, t.SelectFeedback); err != nil {
		return t, err
	}
	return t, nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

// mergeGeometry overrides base with every non-zero field of file.
func mergeGeometry(base, file placement.Geometry) placement.Geometry {
	if file.PanelWidth > 0 {
		base.PanelWidth = file.PanelWidth
	}
	if file.RowHeight > 0 {
		base.RowHeight = file.RowHeight
	}
	if file.Padding > 0 {
		base.Padding = file.Padding
	}
	if file.MaxHeight > 0 {
		base.MaxHeight = file.MaxHeight
	}
	if file.Margin > 0 {
		base.Margin = file.Margin
	}
	if file.Gutter > 0 {
		base.Gutter = file.Gutter
	}
	return base
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func orString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orBool(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if !cfg.App.Stdin && cfg.App.Listen == "" && cfg.App.OpenFile == "" {
		return errors.New("no command source: enable --stdin, --listen or --open")
	}
	if cfg.App.NotifyURL == "" {
		return errors.New("notify-url must not be empty")
	}
	return nil
}
