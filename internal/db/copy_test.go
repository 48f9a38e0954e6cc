package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceTable_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{"cnpj_completo", "natureza_juridica"}
	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE "company_details"`).WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"company_details"}, cols).WillReturnResult(1)
	mock.ExpectCommit()

	n, err := ReplaceTable(context.Background(), mock, "company_details", cols, [][]any{{"11084060000156", "2062"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTable_CopyErrorRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{"cnpj_completo"}
	mock.ExpectBegin()
	mock.ExpectExec(`TRUNCATE "company_details"`).WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"company_details"}, cols).WillReturnError(fmt.Errorf("copy failed"))
	mock.ExpectRollback()

	_, err = ReplaceTable(context.Background(), mock, "company_details", cols, [][]any{{"1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db: replace: COPY INTO company_details")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTable_BeginError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection refused"))

	_, err = ReplaceTable(context.Background(), mock, "company_details", []string{"a"}, [][]any{{"1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db: replace: begin tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}
