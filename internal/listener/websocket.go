package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	DefaultWebsocketPath = "/realms"

	wsWriteWait = 10 * time.Second
)

type WebsocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = DefaultWebsocketPath
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for websocket", "port", l.port, "path", l.path)
	return l.Serve(ctx, listener)
}

// Serve handles websocket upgrades on listener until ctx is canceled.
func (l *WebsocketListener) Serve(ctx context.Context, listener net.Listener) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()
	var sessions sessionTracker

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		if !sessions.add() {
			http.Error(w, "server shutting down", http.StatusServiceUnavailable)
			return
		}
		defer sessions.done()
		l.handleUpgrade(connCtx, w, r)
	})
	srv := &http.Server{Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	err := srv.Serve(listener)
	cancelConns()
	sessions.closeAndWait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving websocket: %w", err)
}

func (l *WebsocketListener) handleUpgrade(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	slog.InfoContext(ctx, "websocket connection established", "remote", r.RemoteAddr)

	stop := closeOnCancel(ctx, conn)
	defer stop()

	l.cm.AcceptConnection(ctx, NewWebsocketStream(conn))
}

// WebsocketStream adapts a websocket connection to a byte stream. Every
// Write is sent as one binary message; reads continue across message
// boundaries.
type WebsocketStream struct {
	conn   *websocket.Conn
	reader io.Reader
}

func NewWebsocketStream(conn *websocket.Conn) *WebsocketStream {
	return &WebsocketStream{conn: conn}
}

func (s *WebsocketStream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			typ, r, err := s.conn.NextReader()
			if err != nil {
				var closeErr *websocket.CloseError
				if errors.As(err, &closeErr) {
					return 0, io.EOF
				}
				return 0, err
			}
			if typ != websocket.BinaryMessage {
				continue
			}
			s.reader = r
		}

		n, err := s.reader.Read(p)
		if errors.Is(err, io.EOF) {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *WebsocketStream) Write(p []byte) (int, error) {
	if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return 0, err
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *WebsocketStream) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
	return s.conn.Close()
}
