package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/reconcile-cli/internal/classify"
	"github.com/sells-group/reconcile-cli/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{LineID: "5511", EntityID: "00000000000191", EntityName: "ACME, LTDA", StatusDate: model.NewDate(2025, 5, 3), Status: "ATIVO"},
		{LineID: "5512", EntityID: "00394460005887", EntityName: "MINISTERIO", Status: "CANCELADO"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	want := "line_id,entity_id,entity_name,status_date,status\n" +
		"5511,00000000000191,\"ACME, LTDA\",2025-05-03,ATIVO\n" +
		"5512,00394460005887,MINISTERIO,,CANCELADO\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_EmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "line_id,entity_id,entity_name,status_date,status\n", buf.String())
}

func TestWriteClassifiedCSV(t *testing.T) {
	cls := &classify.Classification{
		Tags:    map[string]model.Tag{"00394460005887": model.TagGovernment},
		Natures: map[string]string{"00394460005887": "1015"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClassifiedCSV(&buf, sampleRecords(), cls))

	want := "line_id,entity_id,entity_name,status_date,status,legal_nature,company_type\n" +
		"5511,00000000000191,\"ACME, LTDA\",2025-05-03,ATIVO,,PRIVATE\n" +
		"5512,00394460005887,MINISTERIO,,CANCELADO,1015,GOVERNMENT\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	recs := sampleRecords()

	err := WriteXLSX(path, []Sheet{
		{Name: "existing", Records: recs[:1]},
		{Name: "new"},
	})
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	existing := f.Sheet["existing"]
	require.NotNil(t, existing)
	require.Len(t, existing.Rows, 2)
	assert.Equal(t, "entity_id", existing.Rows[0].Cells[1].String())
	assert.Equal(t, "2025-05-03", existing.Rows[1].Cells[3].String())

	assert.Len(t, f.Sheet["new"].Rows, 1)
}

func TestWriteXLSX_NoSheets(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "x.xlsx"), nil)
	require.Error(t, err)
}
