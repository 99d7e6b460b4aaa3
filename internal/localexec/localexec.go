// Package localexec runs local commands for the agent, including commands
// that normally demand a human at the keyboard. The caller declares the
// prompts it expects up front; the runner watches the process output and
// answers each declared prompt exactly once. A simpler non-interactive
// path covers everything else.
package localexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/google/shlex"

	"github.com/shanaka95/DevOpsAgent/internal/waitfor"
)

// ErrStreamClosed signals a response write after the process closed its
// input stream.
var ErrStreamClosed = errors.New("process input stream closed")

// readSlice bounds each wait for output so the loop re-checks the
// deadline and process state frequently.
const readSlice = 200 * time.Millisecond

// finalDrain is how long the runner waits for trailing output after the
// process exits.
const finalDrain = 500 * time.Millisecond

// PromptResponse pairs a literal prompt substring with the line to send
// when it appears. Each pair is consumed at most once per run.
type PromptResponse struct {
	Prompt   string
	Response string
}

// splitCommand parses a command line into an argument vector with
// shell-word semantics: whitespace separates tokens, quoting is respected.
func splitCommand(command string) ([]string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}

// procStream is the running process as seen by the interactive loop:
// somewhere to write responses, a chunk stream to watch, and a way to
// kill it when the deadline passes. Both the pipe-backed and PTY-backed
// runners produce one.
type procStream struct {
	in       io.Writer
	closeIn  func()
	chunks   <-chan string
	waitDone <-chan error
	kill     func()
	// trailing returns labeled stderr output to append after exit; the
	// PTY runner has no separate stderr and returns "".
	trailing func() string
}

// Run executes command with the given prompt/response pairs and an
// overall timeout. The returned string is the full transcript: process
// output in arrival order with a "[Sent: ...]" record for every answered
// prompt and stderr appended under an "Error output:" label. On timeout
// the process is killed and the partial transcript is returned together
// with context.DeadlineExceeded.
func Run(command string, responses []PromptResponse, timeout time.Duration) (string, error) {
	args, err := splitCommand(command)
	if err != nil {
		return "", err
	}

	cmd := exec.Command(args[0], args[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("start %s: %w", args[0], err)
	}

	// Parent-owned stdout pipe: Wait never closes it under the pump, so
	// trailing output cannot be lost to the race exec.Cmd.StdoutPipe
	// warns about.
	pr, pw, err := os.Pipe()
	if err != nil {
		return "", fmt.Errorf("start %s: %w", args[0], err)
	}
	cmd.Stdout = pw
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return "", fmt.Errorf("start %s: %w", args[0], err)
	}
	_ = pw.Close() // child holds the write end now

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	p := procStream{
		in:       stdin,
		closeIn:  func() { _ = stdin.Close() },
		chunks:   pumpChunks(pr),
		waitDone: waitDone,
		kill:     func() { _ = cmd.Process.Kill() },
		trailing: func() string {
			if stderr.Len() == 0 {
				return ""
			}
			return "\nError output:\n" + stderr.String()
		},
	}
	return drive(p, responses, timeout)
}

// pumpChunks reads r until EOF or error on its own goroutine, delivering
// permissively decoded chunks. The channel closes when the stream ends.
func pumpChunks(r io.ReadCloser) <-chan string {
	chunks := make(chan string, 8)
	go func() {
		defer close(chunks)
		defer r.Close()
		buf := make([]byte, 1024)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunks <- strings.ToValidUTF8(string(buf[:n]), "")
			}
			if err != nil {
				return
			}
		}
	}()
	return chunks
}

// drive is the shared interactive loop: accumulate output, answer
// declared prompts, enforce the deadline, and assemble the transcript.
func drive(p procStream, responses []PromptResponse, timeout time.Duration) (string, error) {
	deadline := waitfor.After(timeout)
	remaining := append([]PromptResponse(nil), responses...)

	var log strings.Builder
	rolling := "" // output since the last answered prompt

	exited := false
	for !exited {
		if deadline.Expired() {
			p.kill()
			<-p.waitDone // reap; no orphan left behind
			p.closeIn()
			drainRemaining(p.chunks, &log)
			log.WriteString(fmt.Sprintf("\n[Killed after timeout (%s)]\n", timeout))
			return log.String(), context.DeadlineExceeded
		}

		select {
		case chunk, ok := <-p.chunks:
			if !ok {
				exited = true
				break
			}
			log.WriteString(chunk)
			rolling += chunk
			var err error
			remaining, rolling, err = answerPrompts(p.in, remaining, rolling, &log)
			if err != nil {
				p.kill()
				<-p.waitDone
				p.closeIn()
				drainRemaining(p.chunks, &log)
				return log.String(), err
			}
		case <-p.waitDone:
			exited = true
		case <-time.After(readSlice):
			// No output this slice; loop to re-check the deadline.
		}
	}

	// Process is done (or its stdout reached EOF): stop feeding input and
	// collect whatever is still in flight.
	p.closeIn()
	drainRemaining(p.chunks, &log)
	log.WriteString(p.trailing())
	return log.String(), nil
}

// answerPrompts scans the rolling buffer for the remaining prompts in
// caller order. The first match is answered, recorded, consumed, and the
// rolling buffer reset so stale text cannot trigger a second prompt.
func answerPrompts(in io.Writer, remaining []PromptResponse, rolling string, log *strings.Builder) ([]PromptResponse, string, error) {
	for i, pr := range remaining {
		if !strings.Contains(rolling, pr.Prompt) {
			continue
		}
		if _, err := io.WriteString(in, pr.Response+"\n"); err != nil {
			if isClosedWrite(err) {
				return remaining, rolling, fmt.Errorf("%w: answering %q", ErrStreamClosed, pr.Prompt)
			}
			return remaining, rolling, err
		}
		log.WriteString("[Sent: " + pr.Response + "]\n")
		remaining = append(remaining[:i:i], remaining[i+1:]...)
		return remaining, "", nil
	}
	return remaining, rolling, nil
}

func isClosedWrite(err error) bool {
	return errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, syscall.EPIPE)
}

// drainRemaining appends any chunks still queued after exit, giving up
// after a short wait so a wedged pipe cannot stall the return.
func drainRemaining(chunks <-chan string, log *strings.Builder) {
	timer := time.NewTimer(finalDrain)
	defer timer.Stop()
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				return
			}
			log.WriteString(chunk)
		case <-timer.C:
			return
		}
	}
}
