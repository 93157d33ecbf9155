package server

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-realms/internal/realm"
)

// Snapshot is a read-only copy of the store for observers.
type Snapshot struct {
	Clients []ClientSummary
	Realms  []RealmSummary
	Audit   []AuditEntry
}

type ClientSummary struct {
	Id        uuid.UUID
	Connected bool
	Realms    int
	Completed []realm.Variant
	LastSeen  time.Time
}

type RealmSummary struct {
	Id        realm.RealmId
	Variant   realm.Variant
	Seed      uint64
	Title     string
	Story     string
	Age       int
	Done      bool
	Explorers int
	Embarked  int
}

// Snapshot copies the store under its lock. Clients are ordered by most
// recently seen.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Clients: make([]ClientSummary, 0, len(s.clients)),
		Realms:  make([]RealmSummary, 0, len(s.realms)),
		Audit:   s.audit.recent(),
	}

	for _, c := range s.clients {
		snap.Clients = append(snap.Clients, ClientSummary{
			Id:        c.Id,
			Connected: c.Connected,
			Realms:    c.Realms.Len(),
			Completed: append([]realm.Variant(nil), c.CompletedVariants...),
			LastSeen:  c.LastSeen,
		})
	}
	sort.Slice(snap.Clients, func(i, j int) bool {
		return snap.Clients[i].LastSeen.After(snap.Clients[j].LastSeen)
	})

	for _, st := range s.realms {
		v := st.View()
		snap.Realms = append(snap.Realms, RealmSummary{
			Id:        v.Id,
			Variant:   v.Variant,
			Seed:      st.Seed(),
			Title:     v.Title,
			Story:     v.Story,
			Age:       v.Age,
			Done:      v.Done,
			Explorers: v.Expedition.Explorers.Len(),
			Embarked:  v.Expedition.Embarked(),
		})
	}

	return snap
}
