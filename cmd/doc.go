// Package cmd implements the devopsagent command-line interface.
//
// The package organizes the CLI subcommands (run, exec, verify) and the
// configuration surface shared between them. The heavy lifting lives in
// the internal packages: internal/remote for persistent SSH sessions and
// the session registry, internal/localexec for local interactive command
// execution, and internal/waitfor for the bounded polling loops.
//
// New contributors should start by reading rootCmd.go to see how cobra is
// wired, runCmd.go for the manifest-driven remote execution flow, and
// execCmd.go for local interactive runs.
package cmd
