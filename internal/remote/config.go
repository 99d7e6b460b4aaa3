package remote

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config describes one remote shell connection. Exactly one of Password
// or KeyPath must be set; the other credential fields refine key-based
// auth the same way the CLI flags do.
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	KeyPath        string
	Passphrase     string
	KnownHostsPath string
	StrictHostKey  bool
	DialTimeout    time.Duration

	// AutoContinue enables the best-effort newline injection when output
	// looks like a "press enter to continue" stall. On by default.
	AutoContinue *bool

	// Terminal geometry for the requested PTY.
	TermWidth  int
	TermHeight int

	Logger *zap.Logger
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.Password == "" && c.KeyPath == "" {
		return fmt.Errorf("%w: provide a password or a private key path", ErrCredential)
	}
	if c.Password != "" && c.KeyPath != "" {
		return fmt.Errorf("%w: provide either a password or a private key path, not both", ErrCredential)
	}
	return nil
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Port == 0 {
		out.Port = 22
	}
	if out.DialTimeout <= 0 {
		out.DialTimeout = 15 * time.Second
	}
	if out.TermWidth <= 0 {
		out.TermWidth = 80
	}
	if out.TermHeight <= 0 {
		out.TermHeight = 40
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return out
}

func (c *Config) autoContinue() bool {
	return c.AutoContinue == nil || *c.AutoContinue
}

func (c *Config) target() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
