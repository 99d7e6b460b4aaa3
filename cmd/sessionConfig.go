package cmd

import (
	"github.com/shanaka95/DevOpsAgent/internal/remote"
)

// sessionConfig assembles a remote.Config from the global CLI configuration.
func sessionConfig() remote.Config {
	cfg := remote.Config{
		Host:           cfgHost,
		Port:           cfgPort,
		User:           cfgUser,
		Password:       cfgPassword,
		KeyPath:        cfgKeyPath,
		Passphrase:     cfgPassphrase,
		KnownHostsPath: cfgKnownHosts,
		StrictHostKey:  cfgStrictHost,
		DialTimeout:    cfgConnTimeout,
		Logger:         newLogger(),
	}
	if cfgNoAutoCont {
		off := false
		cfg.AutoContinue = &off
	}
	return cfg
}

// connectSession opens (or replaces) the configured session in the registry
// and returns it ready for Send/Drain.
func connectSession(reg *remote.Registry) (*remote.Session, error) {
	return reg.Connect(cfgSessionID, sessionConfig())
}
