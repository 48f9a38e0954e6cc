package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"unify", "compare", "classify", "count", "registry"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "reconcile-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestUnifyCommand_Flags(t *testing.T) {
	for _, name := range []string{"active", "cancel", "out"} {
		require.NotNil(t, unifyCmd.Flags().Lookup(name), "unify command should have --%s flag", name)
	}
	assert.Equal(t, "unified.csv", unifyCmd.Flags().Lookup("out").DefValue)
}

func TestCompareCommand_Flags(t *testing.T) {
	for _, name := range []string{"current", "previous", "ref-date", "out-dir", "xlsx", "classify"} {
		require.NotNil(t, compareCmd.Flags().Lookup(name), "compare command should have --%s flag", name)
	}
	assert.Equal(t, "false", compareCmd.Flags().Lookup("classify").DefValue)
}

func TestCountCommand_Flags(t *testing.T) {
	flag := countCmd.Flags().Lookup("plan-col")
	require.NotNil(t, flag)
	assert.Equal(t, "sncode", flag.DefValue)
	require.NotNil(t, countCmd.Flags().Lookup("month"))
	require.NotNil(t, countCmd.Flags().Lookup("delimiter"))
}

func TestRegistryCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range registryCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["import"])

	flag := registryImportCmd.Flags().Lookup("cnpj-col")
	require.NotNil(t, flag)
	assert.Equal(t, "cnpj_completo", flag.DefValue)
}
