// Package probe runs the disk probe on a remote machine over SSH and returns
// its raw output.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"
	"golang.org/x/crypto/ssh"
)

// DiskProbeScript prints the block device table followed by the udev
// properties and links of every non-loop disk, each under a "Disk: <name>"
// header.
const DiskProbeScript = `lsblk -b -ndo NAME,SIZE,TYPE,WWN,SERIAL,MODEL,VENDOR | grep -v ^loop
echo ''
for disk in $(lsblk -ndo NAME | grep -v ^loop); do
	echo "Disk: $disk"
	udevadm info --query=all --name=/dev/$disk | grep -E 'ID_|by-'
	echo ''
done
`

const defaultPort = 22

type osProvider interface {
	ReadFile(name string) ([]byte, error)
	UserHomeDir() (string, error)
}

// Target describes how to reach and authenticate with a remote machine. At
// least one of Password and KeyPath must be set.
type Target struct {
	Host           string
	Port           int
	User           string
	Password       string
	KeyPath        string
	Passphrase     []byte
	KnownHostsPath string
	Insecure       bool
	Timeout        time.Duration
}

// SSHProber runs commands on a remote machine over SSH.
type SSHProber struct {
	target    Target
	osHandler osProvider
}

// NewSSHProber returns a pointer to a new [SSHProber].
func NewSSHProber(target Target, osHandler osProvider) *SSHProber {
	return &SSHProber{
		target:    target,
		osHandler: osHandler,
	}
}

// Probe runs [DiskProbeScript] on the remote machine and returns its output.
func (p *SSHProber) Probe(ctx context.Context) (string, error) {
	slog.Info("Probing disks of remote machine.", "host", p.target.Host)

	out, err := p.Run(ctx, DiskProbeScript)
	if err != nil {
		return "", fmt.Errorf("(probe-disks) %w", err)
	}

	return out, nil
}

// Run runs script with sh on the remote machine and returns its standard
// output. A non-zero exit status is an [ErrRemoteCommand].
func (p *SSHProber) Run(ctx context.Context, script string) (string, error) {
	client, err := p.dial(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("(probe-run) %w: failed to open session: %w", ErrConnect, err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-done:
		}
	}()

	if err := session.Run(shellquote.Join("sh", "-c", script)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("(probe-run) %w", ctxErr)
		}

		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("(probe-run) %w: exit status %d: %s",
				ErrRemoteCommand, exitErr.ExitStatus(), strings.TrimSpace(stderr.String()))
		}

		return "", fmt.Errorf("(probe-run) %w: %w", ErrRemoteCommand, err)
	}

	return stdout.String(), nil
}

func (p *SSHProber) dial(ctx context.Context) (*ssh.Client, error) {
	address, err := p.address()
	if err != nil {
		return nil, err
	}

	config, err := p.clientConfig()
	if err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: p.target.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("(probe-dial) %w: %s: %w", ErrConnect, address, err)
	}

	if p.target.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(p.target.Timeout))
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("(probe-dial) %w: %s: %w", ErrConnect, address, err)
	}

	// The deadline only covers the handshake, the probe itself may take longer.
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(clientConn, chans, reqs), nil
}
