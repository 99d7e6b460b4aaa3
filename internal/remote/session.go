// Package remote implements persistent SSH shell sessions for the agent:
// one authenticated connection per session, a shell-type channel so state
// (cwd, env) survives across commands, a background reader that drains the
// channel into an output buffer, and SFTP-based file transfer on a
// separate channel so large transfers never interleave with shell output.
package remote

import (
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/acarl005/stripansi"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/shanaka95/DevOpsAgent/internal/outbuf"
)

// commandPrefix disables pagers and interactive-hostile defaults on every
// command the agent sends; `git log`, `systemctl status` and apt would
// otherwise stall the shell waiting for a human.
const commandPrefix = "PAGER=cat SYSTEMD_PAGER= DEBIAN_FRONTEND=noninteractive "

// pollInterval is the reader's idle re-check slice. Short enough that
// Close is observed promptly, long enough to stay off the CPU.
const pollInterval = 50 * time.Millisecond

// Session is one persistent remote shell. A background goroutine drains
// the shell channel into the buffer for the whole life of the session;
// callers write with Send and take snapshots with Drain on their own
// schedule.
type Session struct {
	id  string
	cfg Config
	log *zap.Logger

	client *ssh.Client
	shell  *ssh.Session
	stdin  io.WriteCloser
	pw     *io.PipeWriter
	pr     *io.PipeReader

	buf outbuf.Buffer

	running    atomic.Bool
	stop       chan struct{}
	readerDone chan struct{}
	closeOnce  sync.Once
	closeErr   error

	// stdinMu serializes Send/SendRaw against the reader's auto-continue
	// newline so interleaved writes cannot split a command line.
	stdinMu sync.Mutex

	// Lazily opened SFTP channel, guarded by the shared file lock.
	transfer *transferChannel
}

// Connect validates cfg, dials the host, opens a PTY-backed shell channel
// and starts the background reader. The caller owns the returned session
// and must Close it.
func Connect(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	client, err := dialSSH(cfg)
	if err != nil {
		return nil, err
	}

	shell, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	// One combined stream for stdout+stderr, like a terminal would show.
	pr, pw := io.Pipe()
	shell.Stdout = pw
	shell.Stderr = pw

	stdin, err := shell.StdinPipe()
	if err != nil {
		_ = pw.Close()
		_ = shell.Close()
		_ = client.Close()
		return nil, err
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0, // disable echo to avoid command-echo noise
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := shell.RequestPty("xterm", cfg.TermHeight, cfg.TermWidth, modes); err != nil {
		_ = stdin.Close()
		_ = pw.Close()
		_ = shell.Close()
		_ = client.Close()
		return nil, err
	}

	// Shell channel, not a one-shot exec channel: cwd and env persist
	// across Send calls.
	if err := shell.Shell(); err != nil {
		_ = stdin.Close()
		_ = pw.Close()
		_ = shell.Close()
		_ = client.Close()
		return nil, err
	}

	s := &Session{
		cfg:        cfg,
		log:        cfg.Logger,
		client:     client,
		shell:      shell,
		stdin:      stdin,
		pw:         pw,
		pr:         pr,
		stop:       make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	s.transfer = newTransferChannel(client)
	s.running.Store(true)
	go s.readLoop()
	return s, nil
}

// ID returns the registry id this session was stored under, or "" for a
// session created outside a registry.
func (s *Session) ID() string { return s.id }

// Send writes command (prefixed to disable pagers and interactive package
// prompts) plus a newline to the shell. Fire-and-forget: it never waits
// for output; poll Drain afterwards.
func (s *Session) Send(command string) error {
	return s.SendRaw(commandPrefix + command + "\n")
}

// SendRaw writes text to the shell exactly as given, no prefix and no
// trailing newline. Lets a caller answer a remote prompt by hand.
func (s *Session) SendRaw(text string) error {
	if !s.running.Load() {
		return errors.New("session is closed")
	}
	s.stdinMu.Lock()
	defer s.stdinMu.Unlock()
	_, err := io.WriteString(s.stdin, text)
	return err
}

// Drain returns everything the remote shell emitted since the last Drain,
// with ANSI escape sequences stripped. It never blocks waiting for new
// data; an idle shell yields "".
func (s *Session) Drain() string {
	return stripansi.Strip(s.buf.Drain())
}

// DrainRaw is Drain without ANSI stripping.
func (s *Session) DrainRaw() string {
	return s.buf.Drain()
}

// Pending reports how many bytes are buffered and not yet drained.
func (s *Session) Pending() int { return s.buf.Len() }

// Close stops the background reader, joins it, and releases the shell
// channel, the transfer channel and the client connection. Safe to call
// any number of times; calls after the first are no-ops.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.running.Store(false)
		close(s.stop)
		<-s.readerDone

		s.transfer.close()
		// Best effort: let the remote shell exit cleanly.
		s.stdinMu.Lock()
		_, _ = io.WriteString(s.stdin, "exit\n")
		_ = s.stdin.Close()
		s.stdinMu.Unlock()
		_ = s.pw.Close()
		_ = s.shell.Close()
		s.closeErr = s.client.Close()
	})
	return s.closeErr
}

// readLoop drains the combined shell stream into the buffer until the
// session is closed. Reads happen on a pump goroutine so this loop can
// re-check the running flag every poll interval instead of blocking on
// I/O; Close never has to wait for the in-flight read to return data.
func (s *Session) readLoop() {
	defer close(s.readerDone)

	chunks := make(chan string, 8)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := s.pr.Read(buf)
			if n > 0 {
				// Permissive decode: drop undecodable bytes rather than fail.
				text := strings.ToValidUTF8(string(buf[:n]), "")
				select {
				case chunks <- text:
				case <-s.stop:
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for s.running.Load() {
		select {
		case text := <-chunks:
			s.buf.Append(text)
			s.maybeAutoContinue(text)
		case err := <-readErr:
			if s.running.Load() && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
				// Fatal to this session only; others keep running.
				s.log.Warn("session reader stopped", zap.String("id", s.id), zap.Error(err))
			}
			return
		case <-ticker.C:
			// Re-check the running flag.
		case <-s.stop:
			return
		}
	}
}

// maybeAutoContinue injects a single newline when a chunk looks like a
// "press enter to continue" stall. Purely heuristic: it can misfire on
// ordinary output containing these words, which is accepted — the agent
// sees the extra blank line in the transcript either way.
func (s *Session) maybeAutoContinue(chunk string) {
	if !s.cfg.autoContinue() {
		return
	}
	lower := strings.ToLower(chunk)
	if strings.Contains(lower, "return") || strings.Contains(lower, "enter") {
		if err := s.SendRaw("\n"); err != nil {
			s.log.Debug("auto-continue write failed", zap.String("id", s.id), zap.Error(err))
		}
	}
}
