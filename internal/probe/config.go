package probe

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func (p *SSHProber) address() (string, error) {
	host := strings.TrimSpace(p.target.Host)
	if host == "" {
		return "", fmt.Errorf("(probe-address) %w: host is required", ErrInvalidTarget)
	}

	port := p.target.Port
	if port <= 0 {
		port = defaultPort
	}

	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

func (p *SSHProber) clientConfig() (*ssh.ClientConfig, error) {
	if p.target.User == "" {
		return nil, fmt.Errorf("(probe-config) %w: user is required", ErrInvalidTarget)
	}

	auth, err := p.authMethods()
	if err != nil {
		return nil, err
	}

	hostKeyCallback, err := p.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	return &ssh.ClientConfig{
		User:            p.target.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         p.target.Timeout,
	}, nil
}

func (p *SSHProber) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if p.target.KeyPath != "" {
		signer, err := p.signer()
		if err != nil {
			return nil, err
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if p.target.Password != "" {
		methods = append(methods, ssh.Password(p.target.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("(probe-config) %w: a password or a private key is required", ErrInvalidTarget)
	}

	return methods, nil
}

func (p *SSHProber) signer() (ssh.Signer, error) {
	privateKey, err := p.osHandler.ReadFile(p.target.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("(probe-config) failed to read private key: %w", err)
	}

	var signer ssh.Signer
	if len(p.target.Passphrase) > 0 {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(privateKey, p.target.Passphrase)
	} else {
		signer, err = ssh.ParsePrivateKey(privateKey)
	}
	if err != nil {
		return nil, fmt.Errorf("(probe-config) %w: failed to parse private key %s: %w",
			ErrInvalidTarget, p.target.KeyPath, err)
	}

	return signer, nil
}

func (p *SSHProber) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if p.target.Insecure {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec
	}

	path := p.target.KnownHostsPath
	if path == "" {
		home, err := p.osHandler.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("(probe-config) failed to find home directory: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("(probe-config) failed to load known hosts %s: %w", path, err)
	}

	return callback, nil
}
