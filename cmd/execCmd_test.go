package cmd

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shanaka95/DevOpsAgent/internal/localexec"
)

// captureStdout runs fn while redirecting os.Stdout and returns what was
// written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestExec_PlainCommandUsesSimpleRunner(t *testing.T) {
	resetConfig()
	origSimple := runSimpleFunc
	t.Cleanup(func() { runSimpleFunc = origSimple })

	var gotCmd string
	var gotTimeout time.Duration
	runSimpleFunc = func(command string, timeout time.Duration) (string, error) {
		gotCmd = command
		gotTimeout = timeout
		return "hello\n", nil
	}

	rootCmd.SetArgs([]string{"exec", "--", "echo", "hello"})
	out := captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })

	require.Equal(t, "echo hello", gotCmd)
	require.Equal(t, 30*time.Second, gotTimeout)
	require.Equal(t, "hello\n", out)
}

func TestExec_RespondUsesInteractiveRunner(t *testing.T) {
	resetConfig()
	origRun := runInteractiveFunc
	t.Cleanup(func() { runInteractiveFunc = origRun })

	var gotResponses []localexec.PromptResponse
	runInteractiveFunc = func(command string, responses []localexec.PromptResponse, timeout time.Duration) (string, error) {
		gotResponses = responses
		return "Password: [Sent: s3cret]\nok\n", nil
	}

	rootCmd.SetArgs([]string{"exec", "--respond", "Password:::wrong", "--", "true"})
	// First "::" splits after "Password", leaving ":wrong" as the response
	_ = captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })
	require.Len(t, gotResponses, 1)
	require.Equal(t, "Password", gotResponses[0].Prompt)
	require.Equal(t, ":wrong", gotResponses[0].Response)
}

func TestExec_PTYFlagUsesPTYRunner(t *testing.T) {
	resetConfig()
	origPTY := runPTYFunc
	t.Cleanup(func() { runPTYFunc = origPTY })

	called := false
	runPTYFunc = func(command string, responses []localexec.PromptResponse, timeout time.Duration) (string, error) {
		called = true
		return "done", nil
	}

	rootCmd.SetArgs([]string{"exec", "--pty", "--", "top"})
	out := captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })
	require.True(t, called)
	// Output without a trailing newline gets one appended
	require.Equal(t, "done\n", out)
}

func TestExec_TimeoutIsNotAnError(t *testing.T) {
	resetConfig()
	origSimple := runSimpleFunc
	t.Cleanup(func() { runSimpleFunc = origSimple })

	runSimpleFunc = func(command string, timeout time.Duration) (string, error) {
		return "partial\n[Killed after timeout (1s)]\n", context.DeadlineExceeded
	}

	rootCmd.SetArgs([]string{"exec", "--timeout", "1s", "--", "sleep", "60"})
	out := captureStdout(t, func() { require.NoError(t, rootCmd.Execute()) })
	require.Contains(t, out, "[Killed after timeout")
}

func TestExec_BadRespondValue(t *testing.T) {
	resetConfig()
	rootCmd.SetArgs([]string{"exec", "--respond", "no separator", "--", "true"})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--respond")
}

func TestExec_RequiresCommand(t *testing.T) {
	resetConfig()
	rootCmd.SetArgs([]string{"exec"})
	require.Error(t, rootCmd.Execute())
}
