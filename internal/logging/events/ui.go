package events

import "github.com/atomicstack/nui-context-menu/internal/logging"

type MenuTracer struct{}

type NavTracer struct{}

type CommandTracer struct{}

type NotifyTracer struct{}

var (
	Menu    = MenuTracer{}
	Nav     = NavTracer{}
	Command = CommandTracer{}
	Notify  = NotifyTracer{}
)

func (MenuTracer) Open(entries int, x, y int, scale float64) {
	logging.Trace("menu.open", map[string]interface{}{"entries": entries, "x": x, "y": y, "scale": scale})
}

func (MenuTracer) Close(notifyHost bool) {
	logging.Trace("menu.close", map[string]interface{}{"notify": notifyHost})
}

func (MenuTracer) Teardown() {
	logging.Trace("menu.teardown", nil)
}

func (MenuTracer) Refresh(entries int, patched bool) {
	logging.Trace("menu.refresh", map[string]interface{}{"entries": entries, "patched": patched})
}

func (MenuTracer) Rejected(action, reason string) {
	logging.Trace("menu.rejected", map[string]interface{}{"action": action, "reason": reason})
}

func (NavTracer) Hover(level, index int) {
	logging.Trace("nav.hover", map[string]interface{}{"level": level, "index": index})
}

func (NavTracer) Pointer(level int, inside bool) {
	logging.Trace("nav.pointer", map[string]interface{}{"level": level, "inside": inside})
}

func (NavTracer) SubmenuOpen(level, anchor int) {
	logging.Trace("nav.submenu-open", map[string]interface{}{"level": level, "anchor": anchor})
}

func (NavTracer) SubmenuClose(level int) {
	logging.Trace("nav.submenu-close", map[string]interface{}{"level": level})
}

func (NavTracer) Stale(timer string) {
	logging.Trace("nav.stale-timer", map[string]interface{}{"timer": timer})
}

func (NavTracer) Click(level, index int, kind string) {
	logging.Trace("nav.click", map[string]interface{}{"level": level, "index": index, "kind": kind})
}

func (CommandTracer) Received(source, action string) {
	logging.Trace("command.received", map[string]interface{}{"source": source, "action": action})
}

func (CommandTracer) Invalid(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.invalid", map[string]interface{}{"source": source, "error": err.Error()})
}

func (NotifyTracer) Emit(kind string) {
	logging.Trace("notify.emit", map[string]interface{}{"kind": kind})
}

func (NotifyTracer) Failed(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("notify.failed", map[string]interface{}{"kind": kind, "error": err.Error()})
}
