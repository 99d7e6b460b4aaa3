package remote

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// dialSSH establishes the authenticated SSH client connection for a
// session. Auth methods are assembled from the validated config: private
// key or password, plus the local ssh-agent when one is reachable.
func dialSSH(cfg Config) (*ssh.Client, error) {
	var auths []ssh.AuthMethod

	if cfg.KeyPath != "" {
		signer, err := loadSigner(cfg.KeyPath, cfg.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("load key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}

	if cfg.Password != "" {
		auths = append(auths, ssh.Password(cfg.Password))
	}

	// Try SSH agent if available
	if a := os.Getenv("SSH_AUTH_SOCK"); a != "" {
		if conn, err := net.Dial("unix", a); err == nil {
			ag := agent.NewClient(conn)
			auths = append(auths, ssh.PublicKeysCallback(ag.Signers))
		}
	}

	var hostKeyCB ssh.HostKeyCallback
	if cfg.StrictHostKey {
		// Try known_hosts file if present; else fail closed
		if _, err := os.Stat(cfg.KnownHostsPath); err == nil {
			cb, err := knownhosts.New(cfg.KnownHostsPath)
			if err != nil {
				return nil, fmt.Errorf("known_hosts: %w", err)
			}
			hostKeyCB = cb
		} else {
			return nil, fmt.Errorf("known_hosts file not found at %s and strict host key checking is enabled", cfg.KnownHostsPath)
		}
	} else {
		hostKeyCB = ssh.InsecureIgnoreHostKey()
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auths,
		HostKeyCallback: hostKeyCB,
		Timeout:         cfg.DialTimeout,
	}

	// Use explicit net.Dialer for connection timeout
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.Dial("tcp", cfg.target())
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, cfg.target(), sshCfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// loadSigner loads a private key with optional passphrase
func loadSigner(path, passphrase string) (ssh.Signer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if passphrase != "" {
		return ssh.ParsePrivateKeyWithPassphrase(b, []byte(passphrase))
	}
	// Try without passphrase first
	s, err := ssh.ParsePrivateKey(b)
	if err == nil {
		return s, nil
	}
	var passphraseMissingError *ssh.PassphraseMissingError
	if errors.As(err, &passphraseMissingError) {
		return nil, fmt.Errorf("private key is encrypted; provide a passphrase")
	}
	return nil, err
}
