package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"watch", "serve", "process", "transcribe", "extract", "sync", "check-keys", "inspect-destinations"} {
		assert.Contains(t, names, want)
	}
}

func TestCheckKeysCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `
whisper:
  model_path: "m.bin"
  binary_path: "whisper-cli"
paths:
  input: "` + filepath.Join(dir, "in") + `"
  output: "` + filepath.Join(dir, "out") + `"
  archived: "` + filepath.Join(dir, "archived") + `"
  temp: "` + filepath.Join(dir, "temp") + `"
  debug: "` + filepath.Join(dir, "debug") + `"
providers:
  gemini:
    api_keys: ["AIzaSyA-0123456789-abcd"]
  ollama:
    disabled: true
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "check-keys"})
	require.NoError(t, root.Execute())

	got := out.String()
	assert.Contains(t, got, "configured")
	assert.Contains(t, got, "AIzaSyA-01...abcd")
	assert.Contains(t, got, "OPENAI_API_KEY")
	assert.Contains(t, got, "disabled")
	assert.DirExists(t, filepath.Join(dir, "in"))
}

func TestSyncRequiresDestinations(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "whisper: {model_path: m.bin, binary_path: w}\npaths: {input: " + filepath.Join(dir, "in") + ", output: " + filepath.Join(dir, "out") +
		", archived: " + filepath.Join(dir, "a") + ", temp: " + filepath.Join(dir, "t") + ", debug: " + filepath.Join(dir, "d") + "}\ncache: {disabled: true}\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	t.Setenv("NOTION_TOKEN", "")

	root := newRootCommand()
	root.SetArgs([]string{"--config", cfgPath, "sync", filepath.Join(dir, "tasks.json")})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTION_TOKEN")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(5 chars)", maskKey("short"))
	assert.Equal(t, "sk-proj-ab...wxyz (20 chars)", maskKey("sk-proj-abcdefghwxyz"))
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Metric", "Count"},
		statsRows(models.SyncStats{Total: 3, Synced: 2, Failed: 1, ByDestination: map[string]int{"HR": 2}}),
		[]columnAlignment{alignLeft, alignRight},
	)
	assert.Contains(t, out, "Synced")
	assert.Contains(t, out, "HR")
	assert.True(t, strings.Count(out, "\n") >= 8)
	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestTaskRows(t *testing.T) {
	rows := taskRows([]models.Task{{Text: strings.Repeat("a", 100), Assignee: "Ravi", Priority: models.PriorityHigh, Confidence: 0.85}})
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0])
	assert.Len(t, []rune(rows[0][1]), 70)
	assert.Equal(t, "0.85", rows[0][5])
}
