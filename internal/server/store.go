// Package server holds the shared state of a realms server and serves the
// request/response protocol on client connections.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/pixil98/go-realms/internal/protocol"
	"github.com/pixil98/go-realms/internal/realm"
)

// Notifier is told about every processed request after the store lock has
// been released.
type Notifier interface {
	Notify(ctx context.Context, e AuditEntry)
}

// Store is the single shared state of the server: the client registry, the
// realms and the audit log. One lock guards all of it and is held for the
// whole of each request, so requests are fully serialized.
type Store struct {
	mu deadlock.Mutex

	clients map[uuid.UUID]*Client
	realms  []*realm.Strategy
	audit   auditLog

	variant   realm.Variant
	realmOpts []realm.StrategyOpt
	notifiers []Notifier
	now       func() time.Time
}

type StoreOpt func(*Store)

func WithAuditSize(n int) StoreOpt {
	return func(s *Store) {
		s.audit = newAuditLog(n)
	}
}

// WithRealmOptions are passed to every realm the store creates.
func WithRealmOptions(opts ...realm.StrategyOpt) StoreOpt {
	return func(s *Store) {
		s.realmOpts = append(s.realmOpts, opts...)
	}
}

func WithNotifier(n Notifier) StoreOpt {
	return func(s *Store) {
		s.notifiers = append(s.notifiers, n)
	}
}

func WithClock(now func() time.Time) StoreOpt {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...StoreOpt) *Store {
	s := &Store{
		clients: map[uuid.UUID]*Client{},
		audit:   newAuditLog(DefaultAuditSize),
		variant: realm.VariantTutorial,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNotifier registers n for subsequent requests.
func (s *Store) AddNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// Handle processes one request and returns its response. Refused requests
// get Void and are still audited.
func (s *Store) Handle(ctx context.Context, req protocol.Request) protocol.Message {
	if req.Message == nil {
		req.Message = protocol.Void{}
	}

	resp, entry, notifiers, err := s.apply(req)
	if err != nil {
		level := slog.LevelDebug
		if errors.Is(err, ErrUnknownClient) {
			level = slog.LevelInfo
		}
		slog.Log(ctx, level, "request refused", "client", req.Client, "request", entry.Request, "error", err)
	}
	for _, n := range notifiers {
		n.Notify(ctx, entry)
	}

	return resp
}

// apply dispatches req and audits it under the store lock. The notifiers
// returned are the ones registered at that moment.
func (s *Store) apply(req protocol.Request) (protocol.Message, AuditEntry, []Notifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.dispatch(req)
	entry := AuditEntry{
		At:      s.now(),
		Client:  req.Client,
		Request: req.Message.Kind().String(),
		Outcome: OutcomeOk,
	}
	if err != nil {
		resp = protocol.Void{}
		entry.Outcome = OutcomeRefused
		entry.Reason = err.Error()
	}
	if c, ok := resp.(protocol.Connect); ok {
		entry.Client = c.Client
	}
	s.audit.add(entry)

	return resp, entry, s.notifiers, err
}

// Disconnect marks a client as no longer connected.
func (s *Store) Disconnect(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[id]; ok {
		c.Connected = false
	}
}

// Client returns a copy of the client record.
func (s *Store) Client(id uuid.UUID) (Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return Client{}, false
	}
	cp := *c
	cp.Realms = c.Realms.Clone()
	cp.CompletedVariants = append([]realm.Variant(nil), c.CompletedVariants...)
	return cp, true
}
