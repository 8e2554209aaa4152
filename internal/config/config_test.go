package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/session"
)

const ms = time.Millisecond

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func emptyConfig(t *testing.T) []string {
	t.Helper()
	return []string{"--config", writeConfig(t, "")}
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(emptyConfig(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.NotifyURL != defaultNotifyURL {
		t.Fatalf("expected default notify URL, got %q", cfg.App.NotifyURL)
	}
	if cfg.App.Timings != session.DefaultTimings() {
		t.Fatalf("expected default timings, got %+v", cfg.App.Timings)
	}
	if cfg.App.Geometry != placement.DefaultGeometry() {
		t.Fatalf("expected default geometry, got %+v", cfg.App.Geometry)
	}
	if cfg.App.Stdin || cfg.App.Listen != "" || cfg.Logging.Trace {
		t.Fatalf("expected transports and tracing off by default, got %+v", cfg)
	}
}

func TestExplicitMissingConfigFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	if _, err := LoadArgs(nil, []string{envConfig + "=" + missing}); err == nil {
		t.Fatalf("expected an explicit missing config file to fail")
	}
}

func TestDefaultPathUsesXDGConfigHome(t *testing.T) {
	if !strings.HasSuffix(DefaultPath(), filepath.Join(appName, "config.toml")) {
		t.Fatalf("unexpected default path %q", DefaultPath())
	}
}

func TestLoadArgsReadsFile(t *testing.T) {
	path := writeConfig(t, `
notify_url = "http://127.0.0.1:9000/"
listen = "127.0.0.1:7070"
origins = ["localhost:*"]
stdin = true
trace = true

[timings]
hover_open = "150ms"
teardown = "200ms"

[geometry]
panel_width = 30
max_height = 12
`)
	cfg, err := LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.NotifyURL != "http://127.0.0.1:9000/" || cfg.App.Listen != "127.0.0.1:7070" {
		t.Fatalf("unexpected transport settings %+v", cfg.App)
	}
	if !cfg.App.Stdin || !cfg.Logging.Trace {
		t.Fatalf("expected stdin and trace enabled from file")
	}
	if len(cfg.App.Origins) != 1 || cfg.App.Origins[0] != "localhost:*" {
		t.Fatalf("unexpected origins %v", cfg.App.Origins)
	}
	want := session.DefaultTimings()
	want.HoverOpen = 150 * ms
	want.Teardown = 200 * ms
	if cfg.App.Timings != want {
		t.Fatalf("expected timings %+v, got %+v", want, cfg.App.Timings)
	}
	g := placement.DefaultGeometry()
	g.PanelWidth = 30
	g.MaxHeight = 12
	if cfg.App.Geometry != g {
		t.Fatalf("expected geometry %+v, got %+v", g, cfg.App.Geometry)
	}
	if cfg.File != path {
		t.Fatalf("expected file %q, got %q", path, cfg.File)
	}
}

func TestPrecedenceFlagsOverEnvOverFile(t *testing.T) {
	path := writeConfig(t, `
listen = "file:1"
[timings]
hover_open = "300ms"
hover_close = "300ms"
`)
	env := []string{
		envListen + "=env:2",
		envHoverOpen + "=250ms",
	}
	cfg, err := LoadArgs([]string{"-config=" + path, "--hover-open-delay", "50ms"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Listen != "env:2" {
		t.Fatalf("expected env to beat file, got %q", cfg.App.Listen)
	}
	if cfg.App.Timings.HoverOpen != 50*ms {
		t.Fatalf("expected flag to beat env, got %s", cfg.App.Timings.HoverOpen)
	}
	if cfg.App.Timings.HoverClose != 300*ms {
		t.Fatalf("expected file value when nothing overrides it, got %s", cfg.App.Timings.HoverClose)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	if _, err := LoadArgs(append(emptyConfig(t), "--panel-width", "2"), nil); err == nil {
		t.Fatalf("expected narrow panel width to fail")
	}
	if _, err := LoadArgs(append(emptyConfig(t), "--teardown-delay", "-1s"), nil); err == nil {
		t.Fatalf("expected negative delay to fail")
	}
	bad := writeConfig(t, "[timings]\nhover_open = \"soon\"\n")
	if _, err := LoadArgs([]string{"--config", bad}, nil); err == nil {
		t.Fatalf("expected invalid duration in file to fail")
	}
	broken := writeConfig(t, "listen = \n")
	if _, err := LoadArgs([]string{"--config", broken}, nil); err == nil {
		t.Fatalf("expected invalid TOML to fail")
	}
}

func TestValidateRequiresCommandSource(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadArgs([]string{"--config", path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error without a command source")
	}
	cfg, err = LoadArgs([]string{"--config", path, "--stdin"}, []string{envOrigins + "=a.example, b.example"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(cfg.App.Origins) != 2 || cfg.App.Origins[1] != "b.example" {
		t.Fatalf("unexpected origins %v", cfg.App.Origins)
	}
}
