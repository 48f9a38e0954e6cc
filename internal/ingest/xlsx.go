package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// XLSXOptions selects the worksheet to read.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads one worksheet into a table; its first row is the header.
func ReadXLSX(path string, opts XLSXOptions) (model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "xlsx: open file")
	}
	return readWorkbook(f, path, opts)
}

// ReadXLSXBytes reads one worksheet of an in-memory workbook.
func ReadXLSXBytes(data []byte, source string, opts XLSXOptions) (model.Table, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "xlsx: open workbook")
	}
	return readWorkbook(f, source, opts)
}

func readWorkbook(f *xlsx.File, source string, opts XLSXOptions) (model.Table, error) {
	sheet, err := getSheet(f, opts)
	if err != nil {
		return model.Table{}, err
	}
	if len(sheet.Rows) == 0 {
		return model.Table{}, eris.Errorf("xlsx: sheet %q has no header row", sheet.Name)
	}

	t := model.Table{Source: source, Header: rowToStrings(sheet.Rows[0])}
	for _, row := range sheet.Rows[1:] {
		t.Rows = append(t.Rows, rowToStrings(row))
	}
	return t, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
