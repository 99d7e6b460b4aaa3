package remote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRegistry_GetNotFound verifies lookups of unknown ids fail with the
// typed sentinel.
func TestRegistry_GetNotFound(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

// TestRegistry_DisconnectNotFound verifies disconnecting an unknown id is
// an error value, not a panic.
func TestRegistry_DisconnectNotFound(t *testing.T) {
	r := NewRegistry(nil)
	require.ErrorIs(t, r.Disconnect("nope"), ErrNotFound)
}

// TestRegistry_DefaultID verifies the empty id maps to "default" on both
// connect and lookup.
func TestRegistry_DefaultID(t *testing.T) {
	cfg, stop := startSSHServer(t, echoShell)
	defer stop()

	r := NewRegistry(nil)
	defer r.CloseAll()

	s, err := r.Connect("", cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultID, s.ID())

	got, err := r.Get("")
	require.NoError(t, err)
	require.Same(t, s, got)
}

// TestRegistry_ConnectReplacesExisting verifies a second connect on the
// same id closes the first session before the second becomes active, so
// a send can only reach the new channel.
func TestRegistry_ConnectReplacesExisting(t *testing.T) {
	cfg, stop := startSSHServer(t, echoShell)
	defer stop()

	r := NewRegistry(nil)
	defer r.CloseAll()

	first, err := r.Connect("web", cfg)
	require.NoError(t, err)

	second, err := r.Connect("web", cfg)
	require.NoError(t, err)
	require.NotSame(t, first, second)

	// Ghost writes to the replaced session are refused.
	require.Error(t, first.Send("ls"))
	require.NoError(t, second.Send("ls"))

	got, err := r.Get("web")
	require.NoError(t, err)
	require.Same(t, second, got)
}

// TestRegistry_Disconnect verifies disconnect removes and closes.
func TestRegistry_Disconnect(t *testing.T) {
	cfg, stop := startSSHServer(t, echoShell)
	defer stop()

	r := NewRegistry(nil)
	s, err := r.Connect("db", cfg)
	require.NoError(t, err)

	require.NoError(t, r.Disconnect("db"))
	_, err = r.Get("db")
	require.ErrorIs(t, err, ErrNotFound)
	require.Error(t, s.Send("ls"))

	// A second disconnect reports not found rather than raising.
	require.ErrorIs(t, r.Disconnect("db"), ErrNotFound)
}

// TestRegistry_CloseAll verifies teardown closes every session and
// empties the registry.
func TestRegistry_CloseAll(t *testing.T) {
	cfg, stop := startSSHServer(t, echoShell)
	defer stop()

	r := NewRegistry(nil)
	a, err := r.Connect("a", cfg)
	require.NoError(t, err)
	b, err := r.Connect("b", cfg)
	require.NoError(t, err)
	require.Len(t, r.IDs(), 2)

	r.CloseAll()
	require.Empty(t, r.IDs())
	require.Error(t, a.Send("x"))
	require.Error(t, b.Send("x"))
}

// TestNewID verifies generated ids are unique and non-empty.
func TestNewID(t *testing.T) {
	require.NotEmpty(t, NewID())
	require.NotEqual(t, NewID(), NewID())
}
