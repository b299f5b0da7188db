package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), "missing.yaml"), args...)
}

func executeWithConfig(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", config}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "resolve", "--", "6.80", "-58.16")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Georgetown, Guyana\t"), out)

	out, err = execute(t, "resolve", "--", "40.70", "-73.80")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Jamaica, NY\t"), out)
}

func TestResolveCommand_BadInput(t *testing.T) {
	_, err := execute(t, "resolve", "--", "north", "-58.16")
	assert.Error(t, err)

	_, err = execute(t, "resolve", "6.80")
	assert.Error(t, err)
}

func TestPlacesCommand(t *testing.T) {
	out, err := execute(t, "places")
	require.NoError(t, err)
	assert.Contains(t, out, "* Georgetown, Guyana")
	assert.Contains(t, out, "Jamaica, NY")
}

func TestSelectDetectResetCommands(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	content := "state_file: " + filepath.Join(dir, "location.json") + "\nnetwork:\n  provider: none\n"
	require.NoError(t, os.WriteFile(config, []byte(content), 0600))

	out, err := executeWithConfig(t, config, "select", "Richmond Hill, NY")
	require.NoError(t, err)
	assert.Equal(t, "Richmond Hill, NY\tmanual\n", out)

	out, err = executeWithConfig(t, config, "detect")
	require.NoError(t, err)
	assert.Equal(t, "Richmond Hill, NY\tmanual\n", out)

	out, err = executeWithConfig(t, config, "reset")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = executeWithConfig(t, config, "detect")
	require.NoError(t, err)
	assert.Equal(t, "Georgetown, Guyana\tdefault\n", out)

	_, err = executeWithConfig(t, config, "select", "Atlantis")
	assert.Error(t, err)
}
