package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/partwire/internal/orderer"
)

const cliManifest = `
version: "1.0"
name: editor
content_types:
  - name: csharp
    base: [code]
contracts:
  - contract: formatter
    implementations:
      - name: default
        description: built-in
      - name: fast
        before: [default]
listeners:
  - name: outline
    content_types: [code]
  - name: crashy
    content_types: [csharp]
    simulate: panic
    before: [outline]
`

func setupHome(t *testing.T) string {
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(args ...string) (stdout, stderr string, err error) {
	root := newRootCmd()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	root.SetOut(outBuf)
	root.SetErr(errBuf)
	root.SetArgs(args)

	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestCheckCommandReportsValidManifest(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	stdout, _, err := executeCommand("check", manifest)
	require.NoError(t, err)
	require.Contains(t, stdout, "[OK] editor is valid")
	require.Contains(t, stdout, "listeners:     2")
}

func TestCheckCommandRejectsCycle(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "cycle.yaml", `
version: "1.0"
name: cyclic
contracts:
  - contract: formatter
    implementations:
      - name: a
        before: [b]
      - name: b
        before: [a]
`)

	_, _, err := executeCommand("check", manifest)
	require.Error(t, err)
	var cyclic *orderer.CyclicOrderingError
	require.ErrorAs(t, err, &cyclic)
	require.Contains(t, err.Error(), "Suggestion:")
}

func TestCheckCommandMissingManifest(t *testing.T) {
	home := setupHome(t)

	_, _, err := executeCommand("check", filepath.Join(home, "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "manifest file does not exist")
}

func TestOrderCommandTableOutput(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	stdout, _, err := executeCommand("order", manifest)
	require.NoError(t, err)
	require.Contains(t, stdout, "Contract formatter")
	require.Contains(t, stdout, "1  fast")
	require.Contains(t, stdout, "2  default")
	require.Contains(t, stdout, "  1. crashy\n  2. outline")
}

func TestOrderCommandJSONOutput(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	stdout, _, err := executeCommand("order", manifest, "--json")
	require.NoError(t, err)

	var payload orderJSONPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, "editor", payload.Manifest)
	require.Len(t, payload.Contracts, 1)
	require.Equal(t, "fast", payload.Contracts[0].Implementations[0].Name)
	require.Equal(t, []string{"default"}, payload.Contracts[0].Implementations[0].Before)
	require.Equal(t, []string{"crashy", "outline"}, payload.Listeners)
}

func TestNotifyCommandReportsFaultAndContinues(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	stdout, stderr, err := executeCommand("notify", manifest, "--content-type", "csharp", "--json")
	require.NoError(t, err)

	var payload notifyJSONPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Equal(t, "csharp", payload.ContentType)
	require.Equal(t, []string{"outline"}, payload.Notified)
	require.Len(t, payload.Faults, 1)
	require.Equal(t, "crashy", payload.Faults[0].Listener)
	require.Contains(t, payload.Faults[0].Error, "simulated a fault")
	require.Contains(t, stderr, "creation listener failed")
}

func TestNotifyCommandTextOutput(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	stdout, _, err := executeCommand("notify", manifest, "-t", "plaintext", "--roles", "document,preview")
	require.NoError(t, err)
	require.Contains(t, stdout, "roles:        DOCUMENT,PREVIEW")
	require.Contains(t, stdout, "no listener applies to this view")
}

func TestNotifyCommandUnknownContentType(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	_, _, err := executeCommand("notify", manifest, "-t", "cobol")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cobol")
}

func TestTraceFlagExportsSpans(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	_, stderr, err := executeCommand("notify", manifest, "-t", "csharp", "--trace")
	require.NoError(t, err)
	require.Contains(t, stderr, "view.create")
	require.Contains(t, stderr, "view.listener")
}

func TestDuplicatePolicyFromConfigFile(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", `
version: "1.0"
name: dupes
contracts:
  - contract: formatter
    implementations:
      - name: default
      - name: default
`)

	strict := writeFile(t, home, "strict.yaml", "duplicate_policy: strict\n")
	_, _, err := executeCommand("check", manifest, "--config", strict)
	var dup *orderer.DuplicateNameError
	require.ErrorAs(t, err, &dup)

	graceful := writeFile(t, home, "graceful.yaml", "duplicate_policy: graceful\nlog_level: warn\n")
	stdout, stderr, err := executeCommand("check", manifest, "--config", graceful)
	require.NoError(t, err)
	require.Contains(t, stdout, "dupes is valid")
	require.Contains(t, stderr, "dropping duplicate implementation")
}

func TestDuplicatePolicyFromEnvironment(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)
	t.Setenv("PARTWIRE_DUPLICATE_POLICY", "sloppy")

	_, _, err := executeCommand("check", manifest)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown duplicate policy")
}

func TestInvalidLogLevel(t *testing.T) {
	home := setupHome(t)
	manifest := writeFile(t, home, "parts.yaml", cliManifest)

	_, _, err := executeCommand("check", manifest, "--log-level", "chatty")
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating logger")
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	setupHome(t)
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-19"

	stdout, _, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "partwire 1.2.3")
	require.Contains(t, stdout, "abcdef1")
	require.Contains(t, stdout, "2026-10-19")
}

func TestVersionFallsBackToEmbeddedBuildInfo(t *testing.T) {
	setupHome(t)
	originalVersion, originalCommit, originalDate := version, commit, date
	originalReader := readBuildInfo
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
		readBuildInfo = originalReader
	})

	version, commit, date = "", "", ""
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.25.1",
			Main:      debug.Module{Path: "github.com/alexisbeaulieu97/partwire", Version: "v0.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef0123"},
				{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}

	stdout, _, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "partwire v0.4.0")
	require.Contains(t, stdout, "commit: 0123456789ab (modified)")
	require.Contains(t, stdout, "built: 2026-10-01T12:00:00Z")
	require.Contains(t, stdout, "go: go1.25.1")
}

func TestVersionWithoutBuildInfo(t *testing.T) {
	setupHome(t)
	originalVersion, originalCommit, originalDate := version, commit, date
	originalReader := readBuildInfo
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
		readBuildInfo = originalReader
	})

	version, commit, date = "", "", ""
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	stdout, _, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "partwire dev\ncommit: none\nbuilt: unknown")
}
