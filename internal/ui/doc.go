// Package ui contains the Bubble Tea program that hosts the context menu.
// The Model owns the menu session; every mutation happens on the Bubble Tea
// update goroutine.
//
// Message flow:
//   - Before and after each message, Update advances the session's timer
//     registry to the wall-clock time elapsed since the program started, so
//     hover, reveal, teardown and select timers fire in due order.
//   - Messages are routed through a typed handler registry. Mouse messages
//     are hit-tested against the open panels (deepest first) and become
//     panel enter/leave and entry enter events for the navigation machine,
//     or clicks. Host commands arrive as commandMsg values read from the
//     transport channel by a re-arming tea.Cmd.
//   - After handling, the model arms a single tea.Tick for the next due
//     timer. Stale wake-ups are harmless because the registry only fires
//     what is due.
//
// Rendering composes each open, revealed panel at its placed cell rectangle
// onto a blank canvas the size of the terminal.
package ui
