package remote

import (
	"bufio"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

const (
	testUser     = "bot"
	testPassword = "hunter2"
)

// fakeShell receives each line the client's shell channel sends and may
// write scripted output back.
type fakeShell func(line string, out io.Writer)

// echoShell is the default script: acknowledge every received line.
func echoShell(line string, out io.Writer) {
	_, _ = io.WriteString(out, "ok:"+line+"\n")
}

// startSSHServer runs a minimal in-process SSH server accepting password
// auth, a PTY-backed shell channel driven by handle, and the sftp
// subsystem rooted at the test process's filesystem.
func startSSHServer(t *testing.T, handle fakeShell) (cfg Config, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	priv, _ := rsa.GenerateKey(rand.Reader, 2048)
	signer, _ := ssh.NewSignerFromKey(priv)
	srvCfg := &ssh.ServerConfig{
		PasswordCallback: func(meta ssh.ConnMetadata, pw []byte) (*ssh.Permissions, error) {
			if meta.User() == testUser && string(pw) == testPassword {
				return nil, nil
			}
			return nil, errors.New("permission denied")
		},
	}
	srvCfg.AddHostKey(signer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go handleTestConn(conn, srvCfg, handle)
		}
	}()

	host, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	cfg = Config{
		Host:        host,
		Port:        port,
		User:        testUser,
		Password:    testPassword,
		DialTimeout: 3 * time.Second,
	}
	return cfg, func() { _ = ln.Close(); <-done }
}

func handleTestConn(raw net.Conn, cfg *ssh.ServerConfig, handle fakeShell) {
	sc, chans, reqs, err := ssh.NewServerConn(raw, cfg)
	if err != nil {
		_ = raw.Close()
		return
	}
	defer sc.Close()
	go ssh.DiscardRequests(reqs)
	for nc := range chans {
		if nc.ChannelType() != "session" {
			_ = nc.Reject(ssh.UnknownChannelType, "")
			continue
		}
		ch, chReqs, err := nc.Accept()
		if err != nil {
			continue
		}
		go handleTestSession(ch, chReqs, handle)
	}
}

func handleTestSession(ch ssh.Channel, in <-chan *ssh.Request, handle fakeShell) {
	for req := range in {
		switch req.Type {
		case "pty-req":
			_ = req.Reply(true, nil)
		case "shell":
			_ = req.Reply(true, nil)
			go shellLoop(ch, handle)
		case "subsystem":
			// Payload: uint32 length + name.
			if len(req.Payload) >= 4 && string(req.Payload[4:]) == "sftp" {
				_ = req.Reply(true, nil)
				go serveSFTP(ch)
			} else {
				_ = req.Reply(false, nil)
			}
		default:
			_ = req.Reply(false, nil)
		}
	}
}

func shellLoop(ch ssh.Channel, handle fakeShell) {
	defer ch.Close()
	br := bufio.NewReader(ch)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			handle(trimEOL(line), ch)
		}
		if err != nil {
			return
		}
	}
}

func serveSFTP(ch ssh.Channel) {
	srv, err := sftp.NewServer(ch)
	if err != nil {
		_ = ch.Close()
		return
	}
	_ = srv.Serve()
	_ = srv.Close()
}

func trimEOL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
