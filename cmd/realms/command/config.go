package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/sasha-s/go-deadlock"

	"github.com/pixil98/go-realms/internal/protocol"
	"github.com/pixil98/go-realms/internal/server"
)

type Config struct {
	Listeners       []ListenerConfig `json:"listeners"`
	Nats            NatsConfig       `json:"nats"`
	Dashboard       DashboardConfig  `json:"dashboard"`
	Journal         JournalConfig    `json:"journal"`
	Realm           RealmConfig      `json:"realm"`
	AuditSize       int              `json:"audit_size"`
	MaxFrameSize    int              `json:"max_frame_size"`
	DeadlockTimeout string           `json:"deadlock_timeout"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.Validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	if c.AuditSize < 0 {
		el.Add(fmt.Errorf("audit_size must not be negative"))
	}
	if c.MaxFrameSize < 0 {
		el.Add(fmt.Errorf("max_frame_size must not be negative"))
	}
	if c.DeadlockTimeout != "" {
		if _, err := time.ParseDuration(c.DeadlockTimeout); err != nil {
			el.Add(fmt.Errorf("parsing deadlock_timeout: %w", err))
		}
	}

	el.Add(c.Nats.Validate())
	el.Add(c.Dashboard.Validate())
	el.Add(c.Journal.Validate())
	el.Add(c.Realm.Validate())

	return el.Err()
}

// buildStore creates the shared server state.
func (c *Config) buildStore() *server.Store {
	opts := []server.StoreOpt{
		server.WithRealmOptions(c.Realm.realmOptions()...),
	}
	if c.AuditSize > 0 {
		opts = append(opts, server.WithAuditSize(c.AuditSize))
	}
	return server.NewStore(opts...)
}

func (c *Config) codecOptions() []protocol.CodecOpt {
	if c.MaxFrameSize > 0 {
		return []protocol.CodecOpt{protocol.WithMaxFrameSize(c.MaxFrameSize)}
	}
	return nil
}

// configureLockDetection sets how long the store lock may be waited on
// before go-deadlock reports it. An empty timeout keeps the library default.
func (c *Config) configureLockDetection() {
	if c.DeadlockTimeout == "" {
		return
	}
	d, _ := time.ParseDuration(c.DeadlockTimeout)
	if d <= 0 {
		deadlock.Opts.Disable = true
		return
	}
	deadlock.Opts.DeadlockTimeout = d
}
