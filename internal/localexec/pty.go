package localexec

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

// RunPTY is Run on a pseudo-terminal. Some programs (ssh, sudo, login)
// only emit their prompts on a TTY; this variant gives them one. Output
// and prompt matching read from the terminal, responses are written back
// to it, and there is no separate stderr stream.
func RunPTY(command string, responses []PromptResponse, timeout time.Duration) (string, error) {
	args, err := splitCommand(command)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(args[0], args[1:]...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("start %s: %w", args[0], err)
	}

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	p := procStream{
		in: ptmx,
		// Closing the terminal on exit also unblocks the pump, which
		// otherwise sees EIO only after the next read.
		closeIn:  func() { _ = ptmx.Close() },
		chunks:   pumpChunks(ptmx),
		waitDone: waitDone,
		kill:     func() { _ = cmd.Process.Kill() },
		trailing: func() string { return "" },
	}
	return drive(p, responses, timeout)
}
