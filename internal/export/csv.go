// Package export writes reconciled records as canonical CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/reconcile-cli/internal/classify"
	"github.com/sells-group/reconcile-cli/internal/model"
)

// Enrichment column names appended by WriteClassifiedCSV.
const (
	ColLegalNature = "legal_nature"
	ColCompanyType = "company_type"
)

type classifiedRow struct {
	model.Record
	LegalNature string    `csv:"legal_nature"`
	CompanyType model.Tag `csv:"company_type"`
}

// WriteCSV writes records under the canonical header. The header is written
// even when records is empty.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(model.Record{}); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return eris.Wrapf(err, "export: write row %d", i+1)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteClassifiedCSV writes records with their legal-nature code and company
// type appended. Records whose identifier is absent from cls are tagged PRIVATE.
func WriteClassifiedCSV(w io.Writer, records []model.Record, cls *classify.Classification) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(classifiedRow{}); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for i, r := range records {
		if err := enc.Encode(enrich(r, cls)); err != nil {
			return eris.Wrapf(err, "export: write row %d", i+1)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func enrich(r model.Record, cls *classify.Classification) classifiedRow {
	row := classifiedRow{Record: r, CompanyType: model.TagPrivate}
	if cls == nil {
		return row
	}
	row.LegalNature = cls.Natures[r.EntityID]
	if tag, ok := cls.Tags[r.EntityID]; ok {
		row.CompanyType = tag
	}
	return row
}
