package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-service"
	"github.com/sasha-s/go-deadlock"

	"github.com/pixil98/go-realms/internal/dashboard"
	"github.com/pixil98/go-realms/internal/listener"
	"github.com/pixil98/go-realms/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	cfg.configureLockDetection()
	deadlock.Opts.OnPotentialDeadlock = func() {
		slog.Error("potential deadlock detected on server state")
	}

	store := cfg.buildStore()
	workers := service.WorkerList{}

	// Optional message bus carrying processed requests
	var nats *messaging.NatsServer
	if cfg.Nats.Enabled {
		var err error
		nats, err = cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		store.AddNotifier(messaging.NewRequestPublisher(nats))
		workers["nats"] = nats
	}

	if cfg.Journal.enabled() {
		j, err := cfg.Journal.open()
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		store.AddNotifier(j)
		workers["journal"] = j
	}

	if cfg.Dashboard.Enabled {
		opts := cfg.Dashboard.options()
		if nats != nil {
			opts = append(opts, dashboard.WithSource(nats))
		}
		d, err := dashboard.New(store, cfg.Dashboard.writer(), opts...)
		if err != nil {
			return nil, fmt.Errorf("creating dashboard: %w", err)
		}
		if nats == nil {
			store.AddNotifier(d)
		}
		workers["dashboard"] = d
	}

	// Create Listeners
	cm := listener.NewConnectionManager(store, cfg.codecOptions()...)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = worker
	}
	workers["listeners"] = &listeners

	return workers, nil
}
