package cmd

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlReport is the top-level structure serialized to the optional report
// file: manifest metadata, the session target, and per-command results.
type yamlReport struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Generated   string          `yaml:"generated"`
	Target      string          `yaml:"target,omitempty"`
	SessionID   string          `yaml:"session_id,omitempty"`
	Results     []yamlCmdResult `yaml:"results"`
}

// yamlCmdResult records the outcome of a single command execution.
type yamlCmdResult struct {
	Title   string `yaml:"title,omitempty"`
	Command string `yaml:"command"`
	Timeout string `yaml:"timeout,omitempty"`
	Error   string `yaml:"error,omitempty"`
	Output  string `yaml:"output"`
}

// newYAMLReport constructs a report seeded with manifest metadata and a
// generated timestamp.
func newYAMLReport(mf *manifest) *yamlReport {
	return &yamlReport{
		Name:        mf.Name,
		Description: mf.Description,
		Generated:   time.Now().Format(time.RFC3339),
	}
}

// addResult appends a command result to the report.
func (r *yamlReport) addResult(res yamlCmdResult) {
	r.Results = append(r.Results, res)
}

// writeYAMLReport serializes the report to YAML with indentation and writes to
// the provided writer in a buffered manner for efficiency.
func writeYAMLReport(w io.Writer, r *yamlReport) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = enc.Close()
		return err
	}
	_ = enc.Close()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
