package cmd

import (
	"time"

	"github.com/shanaka95/DevOpsAgent/internal/localexec"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

var (
	// Global configuration populated by flags and/or environment variables.
	// These are declared here so they are visible across subcommands.
	cfgManifest    string
	cfgOutPath     string
	cfgReportPath  string
	cfgHost        string
	cfgPort        int
	cfgUser        string
	cfgPassword    string
	cfgKeyPath     string
	cfgPassphrase  string
	cfgKnownHosts  string
	cfgStrictHost  bool
	cfgSessionID   string
	cfgConnTimeout time.Duration
	cfgCmdTimeout  time.Duration
	cfgSettle      time.Duration
	cfgNoAutoCont  bool
	cfgVerbose     bool

	// exec subcommand
	cfgResponds    []string
	cfgUsePTY      bool
	cfgExecTimeout time.Duration
)

// Allow tests to stub session dialing and local execution
var (
	connectSessionFunc = connectSession
	runInteractiveFunc = localexec.Run
	runPTYFunc         = localexec.RunPTY
	runSimpleFunc      = localexec.RunSimple
)
