package tally

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ATIVO", "ativa"},
		{" Active ", "ativa"},
		{"ativada", "ativa"},
		{"Desativado", "desativada"},
		{"desativada(o)", "desativada"},
		{"inactive", "desativada"},
		{"SUSPENSO", "suspenso"},
		{"", "indefinido"},
		{"   ", "indefinido"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.raw))
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-06")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.June}, m)
	assert.Equal(t, "2025-06", m.String())

	_, err = ParseMonth("06/2025")
	require.Error(t, err)
}

func exportTable() model.Table {
	return model.Table{
		Source: "datamob.csv",
		Header: []string{"msisdn", "sncode", "status", "data_status"},
		Rows: [][]string{
			{"1", "PLAN_A", "ATIVO", "03/06/2025"},
			{"2", "PLAN_A", "desativado", "15/06/2025"},
			{"3", "PLAN_B", "ativa", "1/6/2025"},
			{"4", "", "", "30/06/2025"},
			{"5", "PLAN_A", "ativo", "01/05/2025"},
			{"6", "PLAN_B", "ativo", "not a date"},
			{"7", "PLAN_A", "ativo", "20/06/2025"},
		},
	}
}

func TestCount_AllRows(t *testing.T) {
	s, err := Count(exportTable(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 0, s.Skipped)
	assert.Equal(t, map[string]int{"PLAN_A": 4, "PLAN_B": 2, NoPlan: 1}, s.ByPlan)
	assert.Equal(t, map[string]int{"ativa": 5, "desativada": 1, "indefinido": 1}, s.ByStatus)
}

func TestCount_MonthFilter(t *testing.T) {
	s, err := Count(exportTable(), Options{Month: &Month{Year: 2025, Month: time.June}})
	require.NoError(t, err)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, []Entry{{"PLAN_A", 3}, {"PLAN_B", 1}, {NoPlan, 1}}, s.SortedPlans())
	assert.Equal(t, []Entry{{"ativa", 2}, {"desativada", 1}}, s.SortedPlanStatuses("PLAN_A"))
	assert.Equal(t, []Entry{{"ativa", 3}, {"desativada", 1}, {"indefinido", 1}}, s.SortedStatuses())
}

func TestCount_MissingColumns(t *testing.T) {
	tbl := model.Table{Source: "x.csv", Header: []string{"sncode"}}

	_, err := Count(tbl, Options{Month: &Month{Year: 2025, Month: time.June}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrSchemaMismatch))

	var mm *schema.MismatchError
	require.True(t, errors.As(err, &mm))
	assert.Equal(t, []string{"status", "data_status"}, mm.Missing)
}

func TestCount_DateColumnOptionalWithoutFilter(t *testing.T) {
	tbl := model.Table{Header: []string{"sncode", "status"}, Rows: [][]string{{"P", "ativo"}}}
	s, err := Count(tbl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Total)
}
