// Package ingest turns an uploaded spreadsheet into an ordered sequence of
// row records for the bulk pipelines. Only the first sheet is read; the first
// row is the header and lookups are case-insensitive, so "Email" and "email"
// both work.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Row struct {
	// Number is the 1-based data row number (header excluded), used in
	// failure reports.
	Number int

	fields map[string]string
}

// NewRow builds a row directly from header/value pairs, bypassing the
// workbook parser. Header keys are matched case-insensitively.
func NewRow(number int, fields map[string]string) Row {
	normalized := make(map[string]string, len(fields))
	for k, v := range fields {
		normalized[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return Row{Number: number, fields: normalized}
}

// Get returns the trimmed cell value under the given header, matched
// case-insensitively. Missing columns and empty cells both return "".
func (r Row) Get(header string) string {
	return r.fields[strings.ToLower(header)]
}

// ParseWorkbook reads the first sheet of an xlsx workbook. A parse failure
// here aborts the whole bulk operation before any row is processed.
func ParseWorkbook(src io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]Row, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		fields := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(cells) {
				fields[header] = strings.TrimSpace(cells[j])
			}
		}
		rows = append(rows, Row{Number: i + 1, fields: fields})
	}
	return rows, nil
}
