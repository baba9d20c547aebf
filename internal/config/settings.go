package config

import (
	"fmt"
	"strconv"

	"github.com/dshills/rangewatch/internal/config/layer"
	"github.com/dshills/rangewatch/internal/sheet"
)

// Setting paths.
const (
	PathChangeHandlingEnabled = "changeHandling.enabled"
	PathMaxCellCount          = "memory.maxCellCount"
	PathHighlightColour       = "highlight.colour"
	PathLogLevel              = "logging.level"

	// SectionMemory is the parent of every setting that affects stored
	// snapshots.
	SectionMemory = "memory"
)

// Defaults.
const (
	DefaultMaxCellCount int64 = 1_000_000
	DefaultLogLevel           = "info"
)

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"changeHandling": map[string]any{
			"enabled": true,
		},
		"memory": map[string]any{
			"maxCellCount": DefaultMaxCellCount,
		},
		"highlight": map[string]any{
			"colour": strconv.Itoa(int(sheet.DefaultHighlight)),
		},
		"logging": map[string]any{
			"level": DefaultLogLevel,
		},
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// validate checks a value for a known setting. Unknown paths are accepted.
func validate(path string, value any) error {
	switch path {
	case PathChangeHandlingEnabled:
		if _, ok := value.(bool); !ok {
			return &ValidationError{Path: path, Message: "must be a boolean", Value: value}
		}
	case PathMaxCellCount:
		if _, ok := toInt64(value); !ok {
			return &ValidationError{Path: path, Message: "must be an integer", Value: value}
		}
	case PathHighlightColour:
		if _, err := colourValue(value); err != nil {
			return &ValidationError{Path: path, Message: err.Error(), Value: value}
		}
	case PathLogLevel:
		if s, ok := value.(string); !ok || !logLevels[s] {
			return &ValidationError{Path: path, Message: "must be one of debug, info, warn, error", Value: value}
		}
	}
	return nil
}

// validateAll checks every known setting present in data.
func validateAll(data map[string]any) error {
	for _, path := range []string{PathChangeHandlingEnabled, PathMaxCellCount, PathHighlightColour, PathLogLevel} {
		v, ok := layer.GetByPath(data, path)
		if !ok {
			continue
		}
		if path == PathChangeHandlingEnabled {
			if n, isInt := v.(int64); isInt && (n == 0 || n == 1) {
				continue
			}
		}
		if err := validate(path, v); err != nil {
			return err
		}
	}
	return nil
}

// colourValue converts a configured colour, given as a host colour number
// or as a string understood by sheet.ParseColour.
func colourValue(v any) (sheet.Colour, error) {
	if n, ok := toInt64(v); ok {
		return sheet.ParseColour(strconv.FormatInt(n, 10))
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("must be a colour, got %s", typeName(v))
	}
	return sheet.ParseColour(s)
}

// MaxCellCount returns the largest range, in cells, whose values are
// stored for comparison. It reads the live setting on every call and falls
// back to the default if the setting is missing or malformed.
func (c *Config) MaxCellCount() int64 {
	n, err := c.GetInt64(PathMaxCellCount)
	if err != nil {
		return DefaultMaxCellCount
	}
	return n
}

// SetMaxCellCount changes the storage threshold.
func (c *Config) SetMaxCellCount(n int64) error {
	return c.Set(PathMaxCellCount, n)
}

// ChangeHandlingEnabled reports whether change events are processed.
func (c *Config) ChangeHandlingEnabled() bool {
	enabled, err := c.GetBool(PathChangeHandlingEnabled)
	if err != nil {
		return true
	}
	return enabled
}

// SetChangeHandlingEnabled turns change handling on or off.
func (c *Config) SetChangeHandlingEnabled(enabled bool) error {
	return c.Set(PathChangeHandlingEnabled, enabled)
}

// HighlightColour returns the fill colour used by the default highlighter.
func (c *Config) HighlightColour() (sheet.Colour, error) {
	v, ok := c.Get(PathHighlightColour)
	if !ok {
		return sheet.DefaultHighlight, nil
	}
	colour, err := colourValue(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", PathHighlightColour, err)
	}
	return colour, nil
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	level, err := c.GetString(PathLogLevel)
	if err != nil || !logLevels[level] {
		return DefaultLogLevel
	}
	return level
}
