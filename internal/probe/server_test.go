package probe

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// testServer is an SSH server answering every exec request with a fixed
// output and exit status.
type testServer struct {
	host     string
	port     int
	hostKey  ssh.PublicKey
	commands chan string
}

func startTestServer(t *testing.T, stdout string, stderr string, exitStatus uint32) *testServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
			if c.User() == "root" && string(password) == "secret" {
				return nil, nil //nolint: nilnil
			}

			return nil, errors.New("access denied")
		},
	}
	config.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	addr := ln.Addr().(*net.TCPAddr) //nolint:forcetypeassert

	srv := &testServer{
		host:     addr.IP.String(),
		port:     addr.Port,
		hostKey:  signer.PublicKey(),
		commands: make(chan string, 16),
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.serve(conn, config, stdout, stderr, exitStatus)
		}
	}()

	return srv
}

func (s *testServer) address() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

func (s *testServer) serve(conn net.Conn, config *ssh.ServerConfig, stdout string, stderr string, exitStatus uint32) {
	_, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		conn.Close()

		return
	}
	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			_ = newChannel.Reject(ssh.UnknownChannelType, "unsupported")

			continue
		}

		channel, requests, err := newChannel.Accept()
		if err != nil {
			continue
		}

		go func() {
			defer channel.Close()

			for req := range requests {
				if req.Type != "exec" {
					_ = req.Reply(false, nil)

					continue
				}

				var payload struct{ Command string }
				_ = ssh.Unmarshal(req.Payload, &payload)
				_ = req.Reply(true, nil)

				s.commands <- payload.Command

				_, _ = io.WriteString(channel, stdout)
				_, _ = io.WriteString(channel.Stderr(), stderr)
				_, _ = channel.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{exitStatus}))

				return
			}
		}()
	}
}
