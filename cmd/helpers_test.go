package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/config"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// setupConfig installs a default configuration backed by a SQLite registry in
// a temp dir.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg = &config.Config{
		Log:      config.LogConfig{Level: "info", Format: "json"},
		Lookup:   config.LookupConfig{Driver: config.DriverSQLite, BatchSize: 1000},
		Ingest:   config.IngestConfig{SampleBytes: 100000},
		Registry: config.RegistryConfig{SQLitePath: filepath.Join(dir, "registry.db")},
	}
	tables = config.DefaultTables()
	return dir
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func runCmd(cmd *cobra.Command) error {
	cmd.SetContext(context.Background())
	defer cmd.SetContext(context.TODO())
	return cmd.RunE(cmd, nil)
}

const activeExport = "MSISDN;CNPJ;RAZAO SOCIAL;PARCEIRO;STATUS_SERVICO\n" +
	"5511900000001;11.084.060/0001-56;ACME SÃO PAULO LTDA;1/15/2026;ATIVO\n" +
	"5511900000002;22.333.444/0001-55;BETA AÇÕES SA;1/20/2026 10:30;ATIVO\n" +
	"5511900000003;33444555000166;GAMA ME;12/5/2025;ATIVO\n" +
	"5511900000004;06981180000116;PREFEITURA DE SÃO JOSÉ;;ATIVO\n" +
	"5511900000005;4444555000177;DELTA INFORMAÇÃO;1/31/2026;ATIVO\n"

const cancelExport = "NUM_TERM;CPF/CNPJ;RAZAO_SOCIAL;HISTORICO_SERVICO;STATUS_SERVICO\n" +
	"5511900000002;22333444000155;BETA AÇÕES SA;260120a|260201s;ATIVO\n" +
	"5511900000006;55.666.777/0001-88;EPSILON GESTÃO;260105a|260110s;CANCELADO\n" +
	"5511900000007;11084060000156;ACME SÃO PAULO LTDA;251101a|260115c;SUSPENSO\n"

const previousSnapshot = "line_id,entity_id,entity_name,status_date,status\n" +
	"5511800000001,11084060000156,ACME SÃO PAULO LTDA,2025-11-02,ATIVO\n" +
	"5511800000002,04444555000177,DELTA INFORMAÇÃO SÃO,2025-12-10,ATIVO\n"
