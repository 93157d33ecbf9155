package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
)

// TcpListener serves the realms protocol on raw tcp connections.
type TcpListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTcpListener(port uint16, cm *ConnectionManager) *TcpListener {
	return &TcpListener{
		port: port,
		cm:   cm,
	}
}

func (l *TcpListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for tcp", "port", l.port)
	return l.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (l *TcpListener) Serve(ctx context.Context, ln net.Listener) error {
	return acceptLoop(ctx, ln, "tcp", func(ctx context.Context, conn net.Conn) {
		stop := closeOnCancel(ctx, conn)
		defer stop()
		l.cm.AcceptConnection(ctx, conn)
	})
}
