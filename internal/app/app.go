package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/nui-context-menu/internal/host"
	"github.com/atomicstack/nui-context-menu/internal/logging"
	"github.com/atomicstack/nui-context-menu/internal/logging/events"
	"github.com/atomicstack/nui-context-menu/internal/menu"
	"github.com/atomicstack/nui-context-menu/internal/notify"
	"github.com/atomicstack/nui-context-menu/internal/placement"
	"github.com/atomicstack/nui-context-menu/internal/session"
	"github.com/atomicstack/nui-context-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	NotifyURL     string
	NotifyTimeout time.Duration
	Listen        string
	Origins       []string
	Stdin         bool
	OpenFile      string
	ExitOnClose   bool
	Timings       session.Timings
	Geometry      placement.Geometry
}

const commandBuffer = 16

// Run bootstraps the transports and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := notify.NewHTTP(cfg.NotifyURL, cfg.NotifyTimeout)
	defer func() {
		notifier.Wait()
		notifier.Close()
	}()

	commands := make(chan menu.Command, commandBuffer)
	if cfg.OpenFile != "" {
		cmd, err := LoadCommand(cfg.OpenFile)
		if err != nil {
			return err
		}
		commands <- cmd
	}
	startTransports(ctx, cfg, os.Stdin, commands)

	s := session.New(session.Config{Timings: cfg.Timings, Geometry: cfg.Geometry}, notifier)
	model := ui.NewModel(s, ui.Options{Commands: commands, ExitOnClose: cfg.ExitOnClose})

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	}
	if cfg.Stdin {
		// stdin carries commands, so keys and mouse come from the terminal
		opts = append(opts, tea.WithInputTTY())
	}
	_, err := tea.NewProgram(model, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func startTransports(ctx context.Context, cfg Config, stdin io.Reader, out chan<- menu.Command) {
	if cfg.Stdin {
		events.App.Transport("stdin", "reading")
		go func() {
			if err := host.ReadLines(ctx, stdin, out); err != nil {
				logging.Error(err)
			}
			events.App.Transport("stdin", "closed")
		}()
	}
	if cfg.Listen != "" {
		events.App.Transport("websocket", cfg.Listen+host.CommandPath)
		srv := host.NewServer(out, cfg.Origins...)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				logging.Error(err)
			}
			events.App.Transport("websocket", "stopped")
		}()
	}
}

// LoadCommand reads one inbound command from a JSON file.
func LoadCommand(path string) (menu.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return menu.Command{}, fmt.Errorf("read command file: %w", err)
	}
	cmd, err := menu.DecodeCommand(data)
	if err != nil {
		return menu.Command{}, fmt.Errorf("%s: %w", path, err)
	}
	return cmd, nil
}
