package schema

import (
	apperrors "invctl/internal/errors"
	"invctl/internal/workbook"
)

// RequiredColumnSet is one alternative set of column names that must all be
// present in a sheet for it to qualify for a role. Members are the canonical
// or alias names themselves, matched directly against the normalized header
// set rather than through the full alias resolver.
type RequiredColumnSet []string

// SelectSheet picks the sheet of wb that serves the given role. A sheet
// qualifies when, for at least one of the alternatives, every member resolves
// against the sheet's headers under the column-resolution comparators. Among
// qualifying sheets the greatest row count wins; remaining ties go to
// workbook order, which keeps selection idempotent.
func SelectSheet(wb *workbook.Workbook, role string, alternatives []RequiredColumnSet) (*workbook.Table, error) {
	var best *workbook.Table
	for _, sheet := range wb.Sheets {
		if !sheetQualifies(sheet, alternatives) {
			continue
		}
		if best == nil || sheet.RowCount() > best.RowCount() {
			best = sheet
		}
	}
	if best == nil {
		attempted := make([][]string, len(alternatives))
		for i, alt := range alternatives {
			attempted[i] = alt
		}
		return nil, apperrors.NewSelectionError(role, attempted)
	}
	return best, nil
}

func sheetQualifies(sheet *workbook.Table, alternatives []RequiredColumnSet) bool {
	exact := make(map[string]bool, len(sheet.Headers))
	stripped := make(map[string]bool, len(sheet.Headers))
	for _, h := range sheet.Headers {
		exact[normalizeHeader(h)] = true
		stripped[stripWhitespace(h)] = true
	}

	for _, alt := range alternatives {
		if columnsPresent(alt, exact, stripped) {
			return true
		}
	}
	return false
}

func columnsPresent(fields RequiredColumnSet, exact, stripped map[string]bool) bool {
	for _, f := range fields {
		if exact[normalizeHeader(f)] {
			continue
		}
		if s := stripWhitespace(f); s != "" && stripped[s] {
			continue
		}
		return false
	}
	return true
}
