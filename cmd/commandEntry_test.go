package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCommandEntry_Line(t *testing.T) {
	c := commandEntry{Command: "df"}
	require.Equal(t, "df", c.line())

	c = commandEntry{Command: "ls", Args: []string{"-la", "/var/log", "with space"}}
	require.Equal(t, "ls -la /var/log 'with space'", c.line())
}

func TestCommandEntry_PerCommandTimeout(t *testing.T) {
	c := commandEntry{}
	require.Equal(t, 30*time.Second, c.perCommandTimeout(30*time.Second))

	c = commandEntry{Timeout: "5s"}
	require.Equal(t, 5*time.Second, c.perCommandTimeout(30*time.Second))

	// Unparseable values fall back to the default
	c = commandEntry{Timeout: "not-a-duration"}
	require.Equal(t, 30*time.Second, c.perCommandTimeout(30*time.Second))
}

func TestCommandEntry_SettleWindow(t *testing.T) {
	c := commandEntry{}
	require.Equal(t, 2*time.Second, c.settleWindow(2*time.Second))

	c = commandEntry{Settle: "250ms"}
	require.Equal(t, 250*time.Millisecond, c.settleWindow(2*time.Second))

	c = commandEntry{Settle: "bogus"}
	require.Equal(t, 2*time.Second, c.settleWindow(2*time.Second))
}
