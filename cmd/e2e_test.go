package cmd

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	srv "github.com/shanaka95/DevOpsAgent/tools/sshserv"
)

// TestEndToEnd_RunWithLocalTestServer starts the in-process SSH server,
// drives the run subcommand against it with a two-command manifest, and
// checks the text output and the YAML report.
func TestEndToEnd_RunWithLocalTestServer(t *testing.T) {
	addr, stop, err := srv.Start("127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping e2e: cannot start test ssh server: %v", err)
	}
	defer stop()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	resetConfig()

	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "out.txt")
	repPath := filepath.Join(tmp, "report.yaml")
	mfPath := writeTemp(t, tmp, "session.yaml", `
name: E2E Test
description: Session commands
commands:
  - title: First
    command: echo one
    settle: 300ms
  - title: Second
    command: echo two
    settle: 300ms
`)

	rootCmd.SetArgs([]string{
		"run",
		"--host", host,
		"--port", port,
		"--user", "tester",
		"--password", "anything",
		"--manifest", mfPath,
		"--out", outPath,
		"--report", repPath,
		"--strict-host-key=false",
		"--cmd-timeout", "10s",
	})
	require.NoError(t, rootCmd.Execute())

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(b)
	require.Contains(t, out, "Name: E2E Test")
	require.Contains(t, out, "Command: echo one")
	require.Contains(t, out, "Command: echo two")
	// The fake shell answers every line with "ok: <line>"
	require.Contains(t, out, "ok: ")
	require.Contains(t, out, "echo one")

	rb, err := os.ReadFile(repPath)
	require.NoError(t, err)
	var rep yamlReport
	require.NoError(t, yaml.Unmarshal(rb, &rep))
	require.Equal(t, "E2E Test", rep.Name)
	require.Equal(t, addr, rep.Target)
	require.Len(t, rep.Results, 2)
	for _, r := range rep.Results {
		require.Empty(t, r.Error)
		require.Contains(t, r.Output, "ok: ")
	}
}

// TestEndToEnd_ManifestSSHHostDefaults verifies that ssh_host values in the
// manifest fill in host/port/user when flags are absent.
func TestEndToEnd_ManifestSSHHostDefaults(t *testing.T) {
	addr, stop, err := srv.Start("127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping e2e: cannot start test ssh server: %v", err)
	}
	defer stop()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	resetConfig()

	tmp := t.TempDir()
	outPath := filepath.Join(tmp, "out.txt")
	mfPath := writeTemp(t, tmp, "session.yaml", `
name: Defaults Test
description: Host from manifest
ssh_host:
  ip: `+host+`
  port: `+port+`
  user: tester
commands:
  - command: hostname
    settle: 300ms
`)

	rootCmd.SetArgs([]string{
		"run",
		"--manifest", mfPath,
		"--out", outPath,
		"--password", "anything",
		"--strict-host-key=false",
		"--cmd-timeout", "10s",
	})
	require.NoError(t, rootCmd.Execute())

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(b), "hostname")
}
