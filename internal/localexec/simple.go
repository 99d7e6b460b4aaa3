package localexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// RunSimple executes a command with no expected prompts: spawn, capture
// stdout and stderr fully, and wait up to timeout for natural completion.
// Stderr is appended beneath stdout under an "Error output:" label. On
// timeout the process is killed and the partial capture is returned with
// context.DeadlineExceeded.
func RunSimple(command string, timeout time.Duration) (string, error) {
	args, err := splitCommand(command)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", args[0], err)
	}

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case <-waitDone:
		return combineOutput(&stdout, &stderr), nil
	case <-timer:
		_ = cmd.Process.Kill()
		<-waitDone // reap
		return combineOutput(&stdout, &stderr), context.DeadlineExceeded
	}
}

func combineOutput(stdout, stderr *bytes.Buffer) string {
	out := stdout.String()
	if stderr.Len() > 0 {
		out += "\nError output:\n" + stderr.String()
	}
	return out
}
