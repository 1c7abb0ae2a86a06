package workbook

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "invctl/internal/errors"
)

// Table is one worksheet as a positional grid: a header row followed by data
// rows. Cells are kept as the formatted strings excelize produces; type
// coercion happens later, in the schema normalizer.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// RowCount returns the number of data rows (the header row excluded).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Cell returns the cell at (row, col), or "" when the source row is ragged
// and does not reach col.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Workbook is an ordered mapping of sheet name to table. Immutable once
// loaded.
type Workbook struct {
	Name   string
	Sheets []*Table
	byName map[string]*Table
}

// Sheet looks a table up by name, case-insensitively and ignoring
// surrounding whitespace.
func (w *Workbook) Sheet(name string) (*Table, bool) {
	t, ok := w.byName[normalizeSheetName(name)]
	return t, ok
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, t := range w.Sheets {
		names[i] = t.Name
	}
	return names
}

func normalizeSheetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Merge combines several workbooks into one sheet collection, preserving
// workbook and sheet order. On duplicate sheet names the first workbook
// wins name lookup; both sheets stay visible to selection.
func Merge(wbs ...*Workbook) *Workbook {
	merged := &Workbook{byName: make(map[string]*Table)}
	var names []string
	for _, wb := range wbs {
		names = append(names, wb.Name)
		for _, t := range wb.Sheets {
			merged.Sheets = append(merged.Sheets, t)
			key := normalizeSheetName(t.Name)
			if _, exists := merged.byName[key]; !exists {
				merged.byName[key] = t
			}
		}
	}
	merged.Name = strings.Join(names, "+")
	return merged
}

// Load reads an .xlsx workbook into memory. The first non-empty row of each
// sheet is taken as the header row; trailing fully-empty rows are dropped.
// Sheets with no header row are skipped.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read workbook %s", path), statErr)
		}
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse workbook %s", path), err)
	}
	defer f.Close()

	wb := &Workbook{
		Name:   path,
		byName: make(map[string]*Table),
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", name), err)
		}
		table := buildTable(name, rows)
		if table == nil {
			continue
		}
		wb.Sheets = append(wb.Sheets, table)
		wb.byName[normalizeSheetName(name)] = table
	}

	return wb, nil
}

// buildTable assembles a Table from raw sheet rows, or nil when the sheet
// holds no header row.
func buildTable(name string, rows [][]string) *Table {
	headerIdx := -1
	for i, row := range rows {
		if !rowIsEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	// Find the last row with actual data so trailing blanks don't inflate
	// the row count used for sheet selection.
	lastDataRow := headerIdx
	for i := len(rows) - 1; i > headerIdx; i-- {
		if !rowIsEmpty(rows[i]) {
			lastDataRow = i
			break
		}
	}

	var data [][]string
	for i := headerIdx + 1; i <= lastDataRow; i++ {
		data = append(data, rows[i])
	}

	return &Table{Name: name, Headers: headers, Rows: data}
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
