package workbook

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/xuri/excelize/v2"

	"github.com/dshills/rangewatch/internal/sheet"
)

// ErrSheetNotFound is returned when a workbook has no sheet with a name.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an open xlsx file.
type Workbook struct {
	mu   sync.Mutex
	file *excelize.File
	path string
	log  logr.Logger

	// styles caches fill styles by colour.
	styles map[sheet.Colour]int
}

// Option configures a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger for read failures that cannot be returned,
// such as those behind sheet dimensions.
func WithLogger(log logr.Logger) Option {
	return func(w *Workbook) {
		if log.GetSink() != nil {
			w.log = log.WithName("workbook")
		}
	}
}

// Open opens the workbook at path.
func Open(path string, opts ...Option) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return newWorkbook(f, path, opts), nil
}

// New creates an empty workbook that will be saved to path. It has one
// sheet named Sheet1.
func New(path string, opts ...Option) *Workbook {
	return newWorkbook(excelize.NewFile(), path, opts)
}

func newWorkbook(f *excelize.File, path string, opts []Option) *Workbook {
	w := &Workbook{
		file:   f,
		path:   path,
		log:    logr.Discard(),
		styles: make(map[sheet.Colour]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the file the workbook saves to.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.GetSheetList()
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	w.mu.Lock()
	idx, err := w.file.GetSheetIndex(name)
	w.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	return newSheet(w, name), nil
}

// AddSheet creates a sheet and returns it.
func (w *Workbook) AddSheet(name string) (*Sheet, error) {
	w.mu.Lock()
	_, err := w.file.NewSheet(name)
	w.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("adding sheet %q: %w", name, err)
	}
	return newSheet(w, name), nil
}

// Save writes the workbook to its path.
func (w *Workbook) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

// SaveAs writes the workbook to path, which becomes its new path.
func (w *Workbook) SaveAs(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	w.path = path
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// rows reads the used area of a sheet.
func (w *Workbook) rows(name string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.GetRows(name)
}

// fillStyle returns a solid fill style for colour, creating it once.
func (w *Workbook) fillStyle(colour sheet.Colour) (int, error) {
	if id, ok := w.styles[colour]; ok {
		return id, nil
	}
	id, err := w.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colour.Hex()}},
	})
	if err != nil {
		return 0, err
	}
	w.styles[colour] = id
	return id, nil
}
