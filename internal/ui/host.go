package ui

import (
	"github.com/atomicstack/nui-context-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForCommand(ch <-chan menu.Command) tea.Cmd {
	return func() tea.Msg {
		cmd, ok := <-ch
		if !ok {
			return commandsDoneMsg{}
		}
		return commandMsg{command: cmd}
	}
}

type commandMsg struct {
	command menu.Command
}

type commandsDoneMsg struct{}

func (m *Model) handleCommandMsg(msg tea.Msg) tea.Cmd {
	cmdMsg, ok := msg.(commandMsg)
	if !ok {
		return nil
	}
	m.ctl.Apply(cmdMsg.command)
	if m.opts.Commands != nil {
		return waitForCommand(m.opts.Commands)
	}
	return nil
}

func (m *Model) handleCommandsDoneMsg(msg tea.Msg) tea.Cmd {
	m.opts.Commands = nil
	return nil
}
