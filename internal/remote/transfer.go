package remote

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// fileMu serializes file transfer across every session and path in the
// process. The agent sometimes issues overlapping file edits; one lock
// keeps partial writes from interleaving.
var fileMu sync.Mutex

// transferChannel is the SFTP side-channel of a session, opened on first
// use. Keeping transfers off the shell stream means file content can never
// be misread as command output.
type transferChannel struct {
	client *ssh.Client

	mu     sync.Mutex
	sftp   *sftp.Client
	closed bool
}

func newTransferChannel(client *ssh.Client) *transferChannel {
	return &transferChannel{client: client}
}

func (t *transferChannel) get() (*sftp.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, fmt.Errorf("session is closed")
	}
	if t.sftp == nil {
		c, err := sftp.NewClient(t.client)
		if err != nil {
			return nil, fmt.Errorf("open sftp channel: %w", err)
		}
		t.sftp = c
	}
	return t.sftp, nil
}

func (t *transferChannel) close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.sftp != nil {
		_ = t.sftp.Close()
		t.sftp = nil
	}
}

// ReadFile fetches the content of a remote file over the SFTP channel.
func (s *Session) ReadFile(remotePath string) (string, error) {
	fileMu.Lock()
	defer fileMu.Unlock()

	c, err := s.transfer.get()
	if err != nil {
		return "", err
	}
	f, err := c.Open(remotePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", remotePath, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", remotePath, err)
	}
	return string(b), nil
}

// WriteFile creates or replaces a remote file with content over the SFTP
// channel.
func (s *Session) WriteFile(remotePath, content string) error {
	fileMu.Lock()
	defer fileMu.Unlock()

	c, err := s.transfer.get()
	if err != nil {
		return err
	}
	f, err := c.Create(remotePath)
	if err != nil {
		return fmt.Errorf("write %s: %w", remotePath, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", remotePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", remotePath, err)
	}
	return nil
}
