package handler

import (
	"github.com/go-logr/logr"

	"github.com/dshills/rangewatch/internal/sheet"
)

// Factory builds the standard handlers with a shared logger.
type Factory struct {
	log logr.Logger
}

// NewFactory creates a Factory whose loggers write to log.
func NewFactory(log logr.Logger) *Factory {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Factory{log: log}
}

// NewHighlighter returns a highlighter filling with colour.
func (f *Factory) NewHighlighter(colour sheet.Colour) Handler {
	return NewHighlighter(colour)
}

// NewLogger returns an info logger writing to the factory's logger.
func (f *Factory) NewLogger() Handler {
	return NewInfoLogger(f.log)
}

// NewLoggerWith returns an info logger writing to log.
func (f *Factory) NewLoggerWith(log logr.Logger) Handler {
	return NewInfoLogger(log)
}

// NewLuaFile returns a handler running the script at path.
func (f *Factory) NewLuaFile(path string) (*Lua, error) {
	return NewLuaFile(path, f.log)
}
