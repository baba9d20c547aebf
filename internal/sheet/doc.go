// Package sheet defines the data-source contract that change tracking reads
// from: a worksheet with full-sheet dimensions and a rectangular range whose
// cell values can be read on demand.
//
// # Contract
//
// A host integration provides two values per edit event:
//
//   - [Worksheet]: the sheet name and its row and column counts
//   - [Range]: the watched range's address, its dimensions, an on-demand
//     read of its values as a [Grid], and a fill operation used for
//     highlighting
//
// Reading range values is the only operation allowed to fail. [Read] wraps
// it so that both returned errors and host panics come back as a failed
// [ReadResult] instead of unwinding the caller.
//
// # Addressing
//
// Ranges are addressed in A1 notation. [ParseArea] and [FormatArea] convert
// between "B2:D10" style strings and [Area] values. Host limits are
// [MaxRows] and [MaxColumns]; a range spanning all columns is how a host
// reports a whole-row edit.
//
// # In-memory host
//
// [Table] is a complete in-memory implementation of the contract. It backs
// tests throughout the module and any caller that holds tabular data
// outside a spreadsheet application.
package sheet
