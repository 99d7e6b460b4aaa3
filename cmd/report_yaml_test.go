package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLReport_RoundTrip(t *testing.T) {
	mf := &manifest{Name: "N", Description: "D"}
	r := newYAMLReport(mf)
	r.Target = "10.0.0.1:22"
	r.SessionID = "default"
	r.addResult(yamlCmdResult{Command: "uptime", Output: "up 3 days\n"})
	r.addResult(yamlCmdResult{Command: "df -h", Timeout: "30s", Error: "context deadline exceeded", Output: "partial"})

	var buf bytes.Buffer
	require.NoError(t, writeYAMLReport(&buf, r))

	var got yamlReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "N", got.Name)
	require.Equal(t, "10.0.0.1:22", got.Target)
	require.Equal(t, "default", got.SessionID)
	require.Len(t, got.Results, 2)
	require.Equal(t, "uptime", got.Results[0].Command)
	require.Empty(t, got.Results[0].Error)
	require.Equal(t, "context deadline exceeded", got.Results[1].Error)
	require.NotEmpty(t, got.Generated)
}
