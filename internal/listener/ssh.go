package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/crypto/ssh"
)

// SshSubsystem is the subsystem name clients request to speak the realms
// protocol over an ssh session channel.
const SshSubsystem = "realms"

// SshListener serves the realms protocol inside ssh session channels.
// Clients are not authenticated; identity comes from the protocol itself.
type SshListener struct {
	port   uint16
	cm     *ConnectionManager
	config *ssh.ServerConfig
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	config := &ssh.ServerConfig{NoClientAuth: true}
	config.AddHostKey(hostKey)

	return &SshListener{
		port:   port,
		cm:     cm,
		config: config,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)
	return l.Serve(ctx, ln)
}

// Serve accepts ssh connections on ln until ctx is canceled.
func (l *SshListener) Serve(ctx context.Context, ln net.Listener) error {
	return acceptLoop(ctx, ln, "ssh", l.handleConnection)
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn) {
	sshConn, chans, reqs, err := ssh.NewServerConn(conn, l.config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	stop := closeOnCancel(ctx, sshConn)
	defer stop()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		l.serveChannel(ctx, newChan)
	}
}

// serveChannel runs one protocol session on a session channel once the
// client has asked for the realms subsystem.
func (l *SshListener) serveChannel(ctx context.Context, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.WarnContext(ctx, "accepting ssh channel", "error", err)
		return
	}
	defer ch.Close()

	if !awaitSubsystem(ctx, requests) {
		return
	}
	l.cm.AcceptConnection(ctx, ch)
}

// awaitSubsystem answers channel requests, accepting only the first request
// for SshSubsystem. It reports false when the channel closes or ctx is
// canceled before that request arrives.
func awaitSubsystem(ctx context.Context, in <-chan *ssh.Request) bool {
	started := make(chan bool, 1)
	go func() {
		pending := true
		for req := range in {
			accept := pending && req.Type == "subsystem" && subsystemName(req.Payload) == SshSubsystem
			if accept {
				pending = false
				started <- true
			}
			req.Reply(accept, nil)
		}
		if pending {
			started <- false
		}
	}()

	select {
	case ok := <-started:
		return ok
	case <-ctx.Done():
		return false
	}
}

// subsystemName decodes the ssh string carried by a subsystem request.
func subsystemName(payload []byte) string {
	var msg struct{ Name string }
	if err := ssh.Unmarshal(payload, &msg); err != nil {
		return ""
	}
	return msg.Name
}
