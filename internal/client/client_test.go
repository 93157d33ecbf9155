package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-realms/internal/protocol"
	"github.com/pixil98/go-realms/internal/realm"
	"github.com/pixil98/go-realms/internal/server"
)

func newTestClient(t *testing.T, store *server.Store) *Client {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	go func() {
		defer serverConn.Close()
		_ = store.RunSession(context.Background(), serverConn)
	}()
	t.Cleanup(func() { clientConn.Close() })
	return New(clientConn)
}

func newTestStore() *server.Store {
	return server.NewStore(server.WithRealmOptions(realm.WithSeed(11)))
}

func TestClient_Bootstrap(t *testing.T) {
	store := newTestStore()

	first := newTestClient(t, store)
	id, err := first.Bootstrap(uuid.Nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	testutil.AssertEqual(t, "assigned", id != uuid.Nil, true)

	tests := map[string]struct {
		previous uuid.UUID
		expSame  bool
	}{
		"resume known id": {
			previous: id,
			expSame:  true,
		},
		"unknown id replaced": {
			previous: uuid.New(),
			expSame:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, store)
			got, err := c.Bootstrap(tt.previous)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "same", got == tt.previous, tt.expSame)
			testutil.AssertEqual(t, "id", c.Id(), got)
		})
	}
}

func TestClient_RequiresBootstrap(t *testing.T) {
	c := newTestClient(t, newTestStore())

	_, err := c.NewRealm()
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestClient_Play(t *testing.T) {
	c := newTestClient(t, newTestStore())
	if _, err := c.Bootstrap(uuid.Nil); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	r, err := c.NewRealm()
	if err != nil {
		t.Fatalf("new realm: %v", err)
	}
	testutil.AssertEqual(t, "realm id", r.Id, realm.RealmId(0))

	r, err = c.Move(r.Id, 3, 0)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	testutil.AssertEqual(t, "region", *r.Expedition.Explorer(0).Region, realm.RegionId(3))

	_, err = c.Act(r.Id, 4, 0, realm.ActionHunt)
	if !errors.Is(err, ErrRefused) {
		t.Fatalf("expected ErrRefused, got %v", err)
	}

	target := protocol.Target{Realm: r.Id, Region: 3, Explorer: 0}
	r, err = c.Drop(target, realm.Gear(realm.EquipmentKnife))
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	three, _ := r.Region(3)
	testutil.AssertEqual(t, "dropped visible", three.Particularities.IndexFunc(func(p realm.Particularity) bool {
		return p == realm.DroppedItem(realm.Gear(realm.EquipmentKnife))
	}) >= 0, true)

	if _, err := c.Pick(target, realm.Gear(realm.EquipmentKnife)); err != nil {
		t.Fatalf("pick: %v", err)
	}

	ids, err := c.RealmsList()
	if err != nil {
		t.Fatalf("realms list: %v", err)
	}
	testutil.AssertEqual(t, "realms", ids, []realm.RealmId{0})

	if err := c.Quit(); err != nil {
		t.Fatalf("quit: %v", err)
	}
}

func TestClient_ViewKeepsCursors(t *testing.T) {
	c := newTestClient(t, newTestStore())
	if _, err := c.Bootstrap(uuid.Nil); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if _, err := c.NewRealm(); err != nil {
		t.Fatalf("new realm: %v", err)
	}

	v := c.View()
	testutil.AssertEqual(t, "has realm", v.HasRealm, true)
	testutil.AssertEqual(t, "realms", v.Realms.Items(), []realm.RealmId{0})

	c.view.Realm.Island.At(1)
	c.view.Realm.Expedition.Explorers.At(2)

	if _, err := c.Move(0, 1, 0); err != nil {
		t.Fatalf("move: %v", err)
	}

	v = c.View()
	k, _, _ := v.Realm.Island.Current()
	testutil.AssertEqual(t, "region cursor", k, realm.RegionId(1))
	testutil.AssertEqual(t, "explorer cursor", v.Realm.Expedition.Explorers.CurrentIndex(), 2)

	// A second realm from a miss is recorded as owned.
	r, err := c.Realm(50)
	if err != nil {
		t.Fatalf("realm: %v", err)
	}
	testutil.AssertEqual(t, "new id", r.Id, realm.RealmId(1))
	v = c.View()
	testutil.AssertEqual(t, "owned", v.Realms.Items(), []realm.RealmId{0, 1})
	cur, _ := v.Realms.Current()
	testutil.AssertEqual(t, "selected", cur, realm.RealmId(1))
}
