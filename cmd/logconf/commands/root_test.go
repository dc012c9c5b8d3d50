package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	expected := []string{"validate", "render", "check", "tail", "serve", "version"}

	registered := make(map[string]bool)
	for _, cmd := range RootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q should be registered", name)
	}
}

// TestGatherVarsPrecedence verifies --var beats the vars file, which
// beats the environment.
// TestGatherVarsPrecedence 验证 --var 优先于 vars 文件，vars 文件优先于环境变量。
func TestGatherVarsPrecedence(t *testing.T) {
	t.Setenv("LOGCONF_VARS_LOGFILE", "/from/env.log")
	t.Setenv("LOGCONF_VARS_LEVEL", "ERROR")

	varsPath := filepath.Join(t.TempDir(), "vars.env")
	require.NoError(t, os.WriteFile(varsPath, []byte("logfile=/from/file.log\n"), 0o644))

	defer func() {
		varFlags = nil
		varsFile = ""
		envPrefix = ""
	}()
	envPrefix = "LOGCONF_VARS_"
	varsFile = varsPath
	varFlags = []string{"logfile=/from/flag.log"}

	vars, err := gatherVars()
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.log", vars["logfile"])
	assert.Equal(t, "ERROR", vars["level"])
}

func TestGatherVarsRejectsMalformedPairs(t *testing.T) {
	defer func() { varFlags = nil }()
	varFlags = []string{"not-a-pair"}

	_, err := gatherVars()
	assert.Error(t, err)
}
