package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"github.com/dshills/rangewatch/internal/sheet"
	"github.com/dshills/rangewatch/internal/workbook"
)

// errFillUnsupported is returned when saving fills to a format that
// cannot hold them.
var errFillUnsupported = errors.New("fills can only be saved to xlsx files")

// source is one observation of a worksheet read from a file.
type source struct {
	ws      sheet.Worksheet
	rangeAt func(address string) (sheet.Range, error)
	saveAs  func(path string) error
	close   func() error
}

// openSource reads the named sheet from an xlsx or CSV file. An empty
// sheet name selects the first sheet; for CSV files it names the sheet,
// defaulting to the file's base name.
func openSource(log logr.Logger, path, sheetName string) (*source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return openWorkbook(log, path, sheetName)
	case ".csv":
		return openCSV(path, sheetName)
	default:
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}
}

func openWorkbook(log logr.Logger, path, sheetName string) (*source, error) {
	wb, err := workbook.Open(path, workbook.WithLogger(log))
	if err != nil {
		return nil, err
	}

	if sheetName == "" {
		names := wb.SheetNames()
		if len(names) == 0 {
			_ = wb.Close()
			return nil, fmt.Errorf("%s: %w", path, workbook.ErrSheetNotFound)
		}
		sheetName = names[0]
	}

	s, err := wb.Sheet(sheetName)
	if err != nil {
		_ = wb.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &source{
		ws: s,
		rangeAt: func(address string) (sheet.Range, error) {
			return s.Range(address)
		},
		saveAs: wb.SaveAs,
		close:  wb.Close,
	}, nil
}

func openCSV(path, sheetName string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if sheetName == "" {
		sheetName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	tbl := sheet.NewTableFromRows(sheetName, rows)

	return &source{
		ws: tbl,
		rangeAt: func(address string) (sheet.Range, error) {
			return tbl.Range(address)
		},
		saveAs: func(string) error { return errFillUnsupported },
		close:  func() error { return nil },
	}, nil
}
