// Package sshserv provides a small in-process SSH server used for manual
// testing and end-to-end CLI tests. It accepts any credentials, runs a fake
// shell over session channels, and serves the sftp subsystem against the
// real filesystem.
package sshserv

import (
	"bufio"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"net"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Start launches a test SSH server on listenAddr (e.g., 127.0.0.1:0). It
// accepts any user and password. Shell sessions get a fake line-oriented
// shell that answers every input line with "ok: <line>\n". The returned addr
// is the bound address; stop closes the listener and waits for shutdown.
func Start(listenAddr string) (addr string, stop func(), err error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return "", nil, err
	}

	stopCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		priv, _ := rsa.GenerateKey(rand.Reader, 2048)
		signer, _ := ssh.NewSignerFromKey(priv)
		cfg := &ssh.ServerConfig{
			NoClientAuth: true,
			PasswordCallback: func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
				return nil, nil
			},
		}
		cfg.AddHostKey(signer)

		for {
			_ = ln.(*net.TCPListener).SetDeadline(time.Now().Add(500 * time.Millisecond))
			conn, err := ln.Accept()
			select {
			case <-stopCh:
				if conn != nil {
					_ = conn.Close()
				}
				return
			default:
			}
			if err != nil {
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					continue
				}
				continue
			}
			go handleConn(conn, cfg)
		}
	}()

	stop = func() {
		close(stopCh)
		_ = ln.Close()
		<-done
	}
	return ln.Addr().String(), stop, nil
}

func handleConn(raw net.Conn, cfg *ssh.ServerConfig) {
	sc, chans, reqs, err := ssh.NewServerConn(raw, cfg)
	if err != nil {
		_ = raw.Close()
		return
	}
	defer func() { _ = sc.Close() }()
	go ssh.DiscardRequests(reqs)
	for ch := range chans {
		if ch.ChannelType() != "session" {
			_ = ch.Reject(ssh.UnknownChannelType, "")
			continue
		}
		c, creqs, err := ch.Accept()
		if err != nil {
			continue
		}
		go handleSession(c, creqs)
	}
}

func handleSession(ch ssh.Channel, in <-chan *ssh.Request) {
	defer func() { _ = ch.Close() }()
	for req := range in {
		switch req.Type {
		case "pty-req", "env", "window-change":
			_ = req.Reply(true, nil)
		case "shell":
			_ = req.Reply(true, nil)
			emulateShell(ch)
			return
		case "subsystem":
			// Payload is a length-prefixed string; "sftp" is all we serve.
			if strings.Contains(string(req.Payload), "sftp") {
				_ = req.Reply(true, nil)
				serveSFTP(ch)
				return
			}
			_ = req.Reply(false, nil)
		default:
			_ = req.Reply(false, nil)
		}
	}
}

func emulateShell(ch ssh.Channel) {
	br := bufio.NewReader(ch)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return
		}
		s := strings.TrimRight(line, "\r\n")
		if s == "" {
			continue
		}
		if s == "exit" || strings.HasSuffix(s, " exit") {
			return
		}
		_, _ = io.WriteString(ch, "ok: "+s+"\n")
	}
}

func serveSFTP(ch ssh.Channel) {
	srv, err := sftp.NewServer(ch)
	if err != nil {
		return
	}
	_ = srv.Serve()
	_ = srv.Close()
}
