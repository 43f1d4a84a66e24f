// Package lua runs Livemark format hook scripts in a sandboxed gopher-lua
// state.
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed and require resolves only the
// "livemark" module the host preloads. Every call runs under a deadline so
// a runaway script cannot stall a keystroke.
package lua
