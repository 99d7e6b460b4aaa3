package cmd

import "go.uber.org/zap"

// newLogger returns the process logger. Debug output goes to stderr when
// --verbose is set; otherwise logging is disabled so command output stays
// clean for scripted consumers.
func newLogger() *zap.Logger {
	if !cfgVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
