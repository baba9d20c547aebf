// Package workbook adapts xlsx workbooks to the sheet contracts so a
// watched range can live in a real spreadsheet file.
//
// Sheet dimensions are the sheet's used area, recomputed on every call,
// so rows or columns added to the file show up as structural changes.
package workbook
