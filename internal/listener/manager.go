package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pixil98/go-realms/internal/protocol"
)

// SessionRunner serves the realms protocol on one connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter, opts ...protocol.CodecOpt) error
}

type ConnectionManager struct {
	sessions  SessionRunner
	codecOpts []protocol.CodecOpt
}

func NewConnectionManager(sessions SessionRunner, opts ...protocol.CodecOpt) *ConnectionManager {
	return &ConnectionManager{
		sessions:  sessions,
		codecOpts: opts,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sessions.RunSession(ctx, conn, m.codecOpts...); err != nil {
		slog.WarnContext(ctx, "client session", "error", err)
	}
}
