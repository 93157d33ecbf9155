package listener

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync"
)

// acceptLoop runs handle on its own goroutine for every connection accepted
// from ln. When ctx is canceled the listener is closed, the handlers'
// context is canceled and acceptLoop waits for them to return.
func acceptLoop(ctx context.Context, ln net.Listener, kind string, handle func(context.Context, net.Conn)) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()
	var wg sync.WaitGroup

	stop := closeOnCancel(ctx, ln)
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				cancelConns()
				wg.Wait()
				return nil
			}
			slog.ErrorContext(ctx, "accepting connection", "kind", kind, "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			slog.InfoContext(connCtx, "connection established", "kind", kind, "remote", conn.RemoteAddr())
			handle(connCtx, conn)
		}()
	}
}

// closeOnCancel closes c once ctx is canceled, which unblocks any pending
// read on it. The returned func releases the watcher.
func closeOnCancel(ctx context.Context, c io.Closer) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}

// sessionTracker counts running sessions and refuses new ones once
// shutdown has begun.
type sessionTracker struct {
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// add registers a session. It reports false after closeAndWait was called.
func (t *sessionTracker) add() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closing {
		return false
	}
	t.wg.Add(1)
	return true
}

func (t *sessionTracker) done() {
	t.wg.Done()
}

// closeAndWait refuses further sessions and waits for the running ones.
func (t *sessionTracker) closeAndWait() {
	t.mu.Lock()
	t.closing = true
	t.mu.Unlock()
	t.wg.Wait()
}
