// Package host receives open, close and refresh commands from the host
// process. Each transport decodes messages with menu.DecodeCommand, drops
// malformed ones after tracing them, and hands valid commands to a channel
// that the UI drains on its own goroutine.
package host
