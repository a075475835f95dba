package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shoal = "../scenario/testdata/shoal.yaml"

// execute runs the command tree against a fresh home directory and returns
// the exit code with captured stdout and stderr. Flag values from earlier
// runs are reset first.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// isolate points HOME and every OODAKIT_* variable at a temporary directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"OODAKIT_CONFIG", "OODAKIT_LOG_FORMAT", "OODAKIT_ARCHIVE", "OODAKIT_JOURNAL"} {
		t.Setenv(k, "")
	}
	t.Setenv("OODAKIT_LOG_LEVEL", "error")
	return home
}

func TestVersion(t *testing.T) {
	isolate(t)
	code, out, _ := execute(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"name": "oodakit"`)
	assert.Contains(t, out, version)
	assert.Contains(t, out, `"ladder_levels": 6`)
}

func TestLadder(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "ladder", "--table", "markdown")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "| 21+ |")

	code, out, _ = execute(t, "ladder", "12")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Index 12: CONFRONTATION (level 3, threshold 10)")
	assert.Contains(t, out, "Next: CRISIS in 3")
	assert.Contains(t, out, "Minimum posture: ELEVATED")

	code, out, _ = execute(t, "ladder", "30")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Next: none (top of ladder)")

	code, _, errOut := execute(t, "ladder", "--", "-1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "non-negative")

	code, out, _ = execute(t, "ladder", "--index=12")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Index 12: CONFRONTATION")

	code, _, errOut = execute(t, "ladder", "--index=-1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "non-negative")

	code, _, errOut = execute(t, "ladder", "--index=3", "4")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not both")
}

func TestROE(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "roe")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "WEAPONS_FREE")

	code, out, _ = execute(t, "roe", "--check", "7")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Index 7 (PROVOCATION):")
	assert.Contains(t, out, "PEACETIME     EXCEEDS")
	assert.Contains(t, out, "ELEVATED      within")
}

func TestDemos(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "demos")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "demo5_aar_doctrinal_clinic")

	code, out, _ = execute(t, "demos", "demo1_living_brief")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "title: Living Scenario Brief")
	assert.Contains(t, out, "Degraded Comms")

	code, _, errOut := execute(t, "demos", "demo9")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "demo9")
}

func TestValidateBuiltinWarns(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Result: WARN (3/5)")

	code, out, _ = execute(t, "validate", "--format", "json")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"failed": 2`)
}

func TestValidateCleanRegistry(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "demos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`demos:
  - id: solo
    title: Solo
    subtitle: One demo
    ooda_phases: [decide]
    agent_roles: [Planner, Explainer, Commander (HITL)]
    agent_runtime: "0.7"
    has_hitl: true
`), 0600))

	code, out, errOut := execute(t, "validate", "--registry", path)
	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Result: PASS (1/1)")
}

func TestPrompt(t *testing.T) {
	isolate(t)

	code, out, _ := execute(t, "prompt", "You are the planner.", "--doctrinal", "--world", "Shoal")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "You are the planner.\n\n"))
	assert.Contains(t, out, `"scenario_name": "Shoal"`)
	assert.Contains(t, out, `"synthetic": true`)
}

func TestScenarioRunJournalAndArchive(t *testing.T) {
	home := isolate(t)
	saveDir := filepath.Join(home, "logs")

	code, out, errOut := execute(t, "scenario", "run", shoal, "--journal", "--archive", "--save-dir", saveDir)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "PASS  shoal-standoff (4/4)  final 13 CONFRONTATION")
	assert.Contains(t, errOut, "all scenario expectations met")

	code, out, _ = execute(t, "journal", "verify")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "OK: 4 entries verified")

	code, out, _ = execute(t, "journal", "replay", "--kind", "turn")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Peak escalation: 13")

	code, out, _ = execute(t, "archive", "list", "--table", "markdown")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Gray-Zone Shoal Standoff")
	assert.Contains(t, out, "13 CONFRONTATION")

	logPath := filepath.Join(saveDir, "shoal-standoff.json")
	_, err := os.Stat(logPath)
	require.NoError(t, err)

	code, out, _ = execute(t, "render", "gamelog", "--log", logPath, "--text", "--table", "markdown")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "PEACETIME !")
}

func TestScenarioRunFailureExitCode(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: bad
posture: PEACETIME
turns:
  - red: probe
    blue: watch
    escalation: 1
    expect_level: CRISIS
`), 0600))

	code, out, _ := execute(t, "scenario", "run", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FAIL  bad (0/1)")
}

func TestRenderHTML(t *testing.T) {
	home := isolate(t)
	saveDir := filepath.Join(home, "logs")
	code, _, errOut := execute(t, "scenario", "run", shoal, "--save-dir", saveDir)
	require.Equal(t, 0, code, errOut)
	logPath := filepath.Join(saveDir, "shoal-standoff.json")

	outPath := filepath.Join(home, "dashboard.html")
	code, _, errOut = execute(t, "render", "dashboard", "--log", logPath, "--out", outPath)
	require.Equal(t, 0, code, errOut)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Gray-Zone Shoal Standoff</title>")
	assert.Contains(t, html, "THRESHOLD CROSSING")
	assert.Contains(t, html, "Dashboard — Turn 4")

	code, out, _ := execute(t, "render", "gamelog", "--log", logPath)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Game Log: Gray-Zone Shoal Standoff")

	code, _, _ = execute(t, "render", "bogus", "--log", logPath)
	assert.Equal(t, 1, code)
}

func TestArchiveShowAndDelete(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "games.db")
	saveDir := filepath.Join(home, "logs")
	code, _, errOut := execute(t, "scenario", "run", shoal, "--save-dir", saveDir)
	require.Equal(t, 0, code, errOut)

	code, out, errOut := execute(t, "archive", "import", filepath.Join(saveDir, "shoal-standoff.json"), "--db", db)
	require.Equal(t, 0, code, errOut)
	require.True(t, strings.HasPrefix(out, "imported "))
	id := strings.Fields(out)[1]

	code, out, _ = execute(t, "archive", "show", id, "--db", db, "--format", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"synthetic": true`)

	code, _, _ = execute(t, "archive", "delete", id, "--db", db)
	require.Equal(t, 0, code)

	code, _, errOut = execute(t, "archive", "show", id, "--db", db)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "game not found")

	code, out, _ = execute(t, "archive", "list", "--db", db)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "No archived games.")
}

func TestConfigFileAndFlags(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0600))

	code, _, errOut := execute(t, "--config", path, "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "log.format")

	code, _, errOut = execute(t, "--log-format", "yaml", "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "log format")
}
