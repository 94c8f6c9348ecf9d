package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "cycle.csv")
	require.NoError(t, os.WriteFile(modelPath,
		[]byte("Start State,Action,End State\nA,go,B\nB,go,C\nC,go,A\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args,
		"--config", filepath.Join(dir, "errfix.yaml"),
		"--model", modelPath,
		"--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDescribeCommand(t *testing.T) {
	out := execute(t, "describe")
	assert.Contains(t, out, "States, and their Actions:")
	assert.Contains(t, out, "State: A\nActions:\n\tgo\n")
}

func TestWalkCommand_JSON(t *testing.T) {
	out := execute(t, "walk", "--start", "A", "--steps", "4", "--seed", "3", "--count", "2", "--json")

	var walks []*domain.Walk
	require.NoError(t, json.Unmarshal([]byte(out), &walks))
	require.Len(t, walks, 2)
	for i, w := range walks {
		assert.Equal(t, "A", w.StartState)
		assert.Equal(t, 4, w.Len())
		require.NotNil(t, w.Seed)
		assert.Equal(t, uint64(3+i), *w.Seed)
		assert.Equal(t, 100.0, w.StateCoverage)
	}
}

func TestValidateCommand(t *testing.T) {
	out := execute(t, "validate", "--start", "B")
	assert.Contains(t, out, "3 states, 3 live transitions")
	assert.Contains(t, out, "Model is valid!")
}

func TestGraphCommand_DOT(t *testing.T) {
	out := execute(t, "graph", "--format", "dot")
	assert.Contains(t, out, "digraph G {")
}
