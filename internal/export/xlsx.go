package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// Sheet is one named worksheet of records.
type Sheet struct {
	Name    string
	Records []model.Record
}

// WriteXLSX saves sheets into a single workbook at path, each with the
// canonical header row.
func WriteXLSX(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return eris.New("export: no sheets to write")
	}

	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.Name)
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %q", s.Name)
		}
		addRow(sheet, model.Columns)
		for _, r := range s.Records {
			addRow(sheet, r.Values())
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
