package client

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/ssh"

	"github.com/pixil98/go-realms/internal/listener"
)

// DialTcp connects to a plain tcp listener.
func DialTcp(ctx context.Context, addr string) (io.ReadWriteCloser, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return conn, nil
}

// DialWebsocket connects to a websocket listener, e.g. ws://host:port/realms.
func DialWebsocket(ctx context.Context, url string) (io.ReadWriteCloser, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return listener.NewWebsocketStream(conn), nil
}

// DialSsh opens an ssh session on addr and starts the realms subsystem.
func DialSsh(addr string, config *ssh.ClientConfig) (io.ReadWriteCloser, error) {
	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	sess, err := conn.NewSession()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening ssh session: %w", err)
	}
	in, err := sess.StdinPipe()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh stdin: %w", err)
	}
	out, err := sess.StdoutPipe()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh stdout: %w", err)
	}
	if err := sess.RequestSubsystem(listener.SshSubsystem); err != nil {
		conn.Close()
		return nil, fmt.Errorf("requesting %s subsystem: %w", listener.SshSubsystem, err)
	}
	return &sshStream{Reader: out, in: in, sess: sess, conn: conn}, nil
}

type sshStream struct {
	io.Reader
	in   io.WriteCloser
	sess *ssh.Session
	conn *ssh.Client
}

func (s *sshStream) Write(p []byte) (int, error) {
	return s.in.Write(p)
}

func (s *sshStream) Close() error {
	s.in.Close()
	s.sess.Close()
	return s.conn.Close()
}
