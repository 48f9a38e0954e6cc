package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

// TestScenario_UnifyWindowDiff runs both export layouts through mapping,
// unification, the January 2026 window and the diff.
func TestScenario_UnifyWindowDiff(t *testing.T) {
	active := model.Table{
		Source: "ativas.csv",
		Header: []string{"MSISDN", "CNPJ", "RAZAO SOCIAL", "PARCEIRO", "STATUS_SERVICO"},
		Rows: [][]string{
			{"5511900000001", "11.084.060/0001-56", "ACME LTDA", "1/15/2026", "ATIVO"},
			{"5511900000002", "22.333.444/0001-55", "BETA SA", "1/20/2026 10:30", "ATIVO"},
			{"5511900000003", "33444555000166", "GAMA ME", "12/5/2025", "ATIVO"},
			{"5511900000004", "06981180000116", "PREFEITURA", "", "ATIVO"},
			{"5511900000005", "4444555000177", "DELTA", "1/31/2026", "ATIVO"},
		},
	}
	cancel := model.Table{
		Source: "canceladas.csv",
		Header: []string{"NUM_TERM", "CPF/CNPJ", "RAZAO_SOCIAL", "HISTORICO_SERVICO", "STATUS_SERVICO"},
		Rows: [][]string{
			{"5511900000002", "22333444000155", "BETA SA", "260120a|260201s", "ATIVO"},
			{"5511900000006", "55.666.777/0001-88", "EPSILON", "260105a|260110s", "CANCELADO"},
			{"5511900000007", "11084060000156", "ACME LTDA", "251101a|260115c", "SUSPENSO"},
		},
	}

	activeRecs, err := schema.Map(active, schema.Active)
	require.NoError(t, err)
	cancelRecs, err := schema.Map(cancel, schema.CancelSuspend)
	require.NoError(t, err)

	full := Unify(activeRecs, cancelRecs)
	require.Len(t, full, 7)

	window := FilterWindow(full, PreviousMonth(model.NewDate(2026, time.February, 10)))
	require.Len(t, window, 4)

	ref := map[string]struct{}{"11084060000156": {}, "04444555000177": {}}
	res := Diff(full, window, ref)

	lines := func(rs []model.Record) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.LineID)
		}
		return out
	}
	assert.Equal(t, []string{"5511900000001", "5511900000005"}, lines(res.Existing))
	assert.Equal(t, []string{"5511900000002", "5511900000006"}, lines(res.New))
	assert.Equal(t,
		[]string{"5511900000001", "5511900000003", "5511900000004", "5511900000005", "5511900000007"},
		lines(res.UnclassifiedBaseline),
	)
}
