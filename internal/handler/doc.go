// Package handler provides the reactions run after each compared edit.
//
// A Handler receives the comparison together with the live worksheet and
// range. Handlers are run in registration order by the processor; an error
// from one handler does not stop the others.
//
// Built-in handlers:
//
//   - Highlighter fills changed ranges with a colour
//   - InfoLogger writes one structured log record per change
//   - JSONLog writes one JSON object per line
//   - Metrics counts changes by kind with OpenTelemetry
//   - Lua runs a user script's handle_change function
//   - Func adapts a plain Go function
package handler
