// Package script runs user-supplied Lua in a restricted gopher-lua state.
//
// Only the base, table, string and math libraries are opened. Functions
// that load code from disk or from strings are removed, print is routed
// to the state's logger, and every call runs under a deadline.
//
// A State is not safe for use from several goroutines at once without
// the State's own locking, which every exported method takes.
package script
