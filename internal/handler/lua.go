package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/script"
	"github.com/dshills/rangewatch/internal/sheet"
)

// LuaEntryPoint is the global function a handler script must define.
const LuaEntryPoint = "handle_change"

// ErrNoEntryPoint is returned when a script does not define handle_change.
var ErrNoEntryPoint = errors.New("script does not define " + LuaEntryPoint)

// Lua runs a user script for every change. The script defines
//
//	function handle_change(change) ... end
//
// where change is a table with the keys produced by Fields. Returning a
// non-empty string (or calling error) fails the handler with that
// message. The script is called for every edit, including unchanged ones
// whose kind is "none".
type Lua struct {
	state *script.State
	name  string
}

// NewLua loads a handler script from source. name is used in errors.
func NewLua(name, source string, log logr.Logger) (*Lua, error) {
	state := script.NewState(script.WithLogger(scriptLogger(log, name)))
	if err := state.DoString(source); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return newLua(name, state)
}

// NewLuaFile loads a handler script from a file.
func NewLuaFile(path string, log logr.Logger) (*Lua, error) {
	state := script.NewState(script.WithLogger(scriptLogger(log, path)))
	if err := state.DoFile(path); err != nil {
		_ = state.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return newLua(path, state)
}

func newLua(name string, state *script.State) (*Lua, error) {
	if !state.HasFunction(LuaEntryPoint) {
		_ = state.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoEntryPoint)
	}
	return &Lua{state: state, name: name}, nil
}

func scriptLogger(log logr.Logger, name string) logr.Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return log.WithName("script").WithValues("script", name)
}

// HandleChange implements Handler.
func (l *Lua) HandleChange(ctx context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error {
	results, err := l.state.Call(ctx, LuaEntryPoint, Fields(c, ws, rng))
	if err != nil {
		return fmt.Errorf("%s: %w", l.name, err)
	}
	if len(results) > 0 {
		if msg, ok := results[0].(lua.LString); ok && msg != "" {
			return fmt.Errorf("%s: %s", l.name, string(msg))
		}
	}
	return nil
}

// Close releases the script's Lua state.
func (l *Lua) Close() error {
	return l.state.Close()
}
