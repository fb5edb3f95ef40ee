package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, name := range []string{"analyze", "preprocess"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ecoscan", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "analyze command should have --format flag")
	assert.Equal(t, "", flag.DefValue)
}

func TestAnalyzeCommand_RequiresFileArg(t *testing.T) {
	assert.Error(t, analyzeCmd.Args(analyzeCmd, nil))
	assert.Error(t, analyzeCmd.Args(analyzeCmd, []string{"a.pdf", "b.pdf"}))
	assert.NoError(t, analyzeCmd.Args(analyzeCmd, []string{"report.pdf"}))
}

func TestPreprocessCommand_RequiresFileArg(t *testing.T) {
	assert.Error(t, preprocessCmd.Args(preprocessCmd, nil))
	assert.NoError(t, preprocessCmd.Args(preprocessCmd, []string{"report.txt"}))
}
