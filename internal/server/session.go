package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pixil98/go-realms/internal/protocol"
)

// RunSession serves requests from conn until the client quits or the stream
// fails. Each request is answered before the next one is read.
func (s *Store) RunSession(ctx context.Context, conn io.ReadWriter, opts ...protocol.CodecOpt) error {
	codec := protocol.NewCodec(conn, opts...)

	var client uuid.UUID
	defer func() {
		if client != uuid.Nil {
			s.Disconnect(client)
		}
	}()

	for {
		req, err := codec.ReadRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}

		resp := s.Handle(ctx, req)
		switch r := resp.(type) {
		case protocol.Connect:
			client = r.Client
		case protocol.Void:
		default:
			client = req.Client
		}

		if err := codec.WriteResponse(resp); err != nil {
			return fmt.Errorf("writing %s: %w", resp.Kind(), err)
		}

		if _, ok := resp.(protocol.Quit); ok {
			slog.InfoContext(ctx, "client quit", "client", client)
			client = uuid.Nil
			return nil
		}
	}
}
