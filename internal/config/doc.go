// Package config provides the configuration system for rangewatch.
//
// Settings are dotted paths into nested maps, resolved from layers with
// higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Session (Set)           │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← RANGEWATCH_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - layer: Layer management and merging
//   - loader: TOML, YAML and environment loading
//   - notify: Change notification and observer pattern
//   - watcher: File watching for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile("rangewatch.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	limit := cfg.MaxCellCount()
//
// # Live values
//
// Every accessor reads the merged layers at call time, so a value changed
// with Set, through the environment at Load, or by a reload from Watch is
// seen by the next call. Observers registered with SubscribePath are told
// about such changes.
//
// # Thread Safety
//
// Config is safe for concurrent use.
package config
