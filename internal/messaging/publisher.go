package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-realms/internal/server"
)

// RequestsSubject carries one message per processed client request.
const RequestsSubject = "realms.requests"

// RequestPublisher forwards audit entries to RequestsSubject as JSON.
type RequestPublisher struct {
	server *NatsServer
}

func NewRequestPublisher(server *NatsServer) *RequestPublisher {
	return &RequestPublisher{server: server}
}

func (p *RequestPublisher) Notify(ctx context.Context, e server.AuditEntry) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.WarnContext(ctx, "encoding request notification", "error", err)
		return
	}
	if err := p.server.Publish(RequestsSubject, data); err != nil {
		slog.DebugContext(ctx, "publishing request notification", "error", err)
	}
}

// SubscribeRequests calls fn with every audit entry published on
// RequestsSubject.
func (n *NatsServer) SubscribeRequests(ctx context.Context, fn func(server.AuditEntry)) (func(), error) {
	return n.Subscribe(RequestsSubject, func(data []byte) {
		var e server.AuditEntry
		if err := json.Unmarshal(data, &e); err != nil {
			slog.WarnContext(ctx, "decoding request notification", "error", err)
			return
		}
		fn(e)
	})
}
