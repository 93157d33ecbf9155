package server

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pixil98/go-realms/internal/protocol"
	"github.com/pixil98/go-realms/internal/realm"
)

// dispatch runs with the store lock held.
func (s *Store) dispatch(req protocol.Request) (protocol.Message, error) {
	switch m := req.Message.(type) {
	case protocol.Register:
		return protocol.Connect{Client: s.register()}, nil
	case protocol.Connect:
		return protocol.Connect{Client: s.connect(m.Client)}, nil
	}

	c, ok := s.clients[req.Client]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, req.Client)
	}
	c.LastSeen = s.now()

	switch m := req.Message.(type) {
	case protocol.RequestRealmsList:
		return protocol.RealmsList{Realms: c.Realms.Clone()}, nil
	case protocol.RequestNewRealm:
		return s.newRealm(c)
	case protocol.RequestRealm:
		st, err := s.realm(m.Realm)
		if err != nil {
			return s.newRealm(c)
		}
		return protocol.Realm{Realm: st.View()}, nil
	case protocol.Explorer:
		return s.mutate(c, m.Realm, func(st *realm.Strategy) error {
			switch m.Op {
			case protocol.OpChangeRegion:
				return st.Move(m.Explorer, m.Region)
			case protocol.OpAction:
				return st.Action(m.Explorer, m.Region, m.Action)
			default:
				return fmt.Errorf("%w: explorer op %s", realm.ErrNotPermitted, m.Op)
			}
		})
	case protocol.DropEquipment:
		return s.mutate(c, m.Realm, func(st *realm.Strategy) error {
			return st.DropEquipment(m.Explorer, m.Region, m.Equipment)
		})
	case protocol.PickEquipment:
		return s.mutate(c, m.Realm, func(st *realm.Strategy) error {
			return st.PickEquipment(m.Explorer, m.Region, m.Equipment)
		})
	case protocol.InvestigateParticularity:
		return s.mutate(c, m.Realm, func(st *realm.Strategy) error {
			return st.InvestigateParticularity(m.Explorer, m.Region, m.Particularity)
		})
	case protocol.ForgetParticularity:
		return s.mutate(c, m.Realm, func(st *realm.Strategy) error {
			return st.ForgetParticularity(m.Explorer, m.Region, m.Particularity)
		})
	case protocol.Quit:
		c.Connected = false
		return protocol.Quit{}, nil
	case protocol.Void:
		return protocol.Void{}, nil
	case protocol.RealmsList, protocol.Realm:
		return nil, fmt.Errorf("%w: %s", ErrResponseOnly, m.Kind())
	default:
		return nil, fmt.Errorf("unhandled message %T", m)
	}
}

func (s *Store) register() uuid.UUID {
	id := uuid.New()
	s.clients[id] = newClient(id, s.now())
	return id
}

// connect resumes a known client or registers a fresh one.
func (s *Store) connect(id uuid.UUID) uuid.UUID {
	c, ok := s.clients[id]
	if !ok {
		return s.register()
	}
	c.Connected = true
	c.LastSeen = s.now()
	return id
}

func (s *Store) realm(id realm.RealmId) (*realm.Strategy, error) {
	if id < 0 || int(id) >= len(s.realms) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRealm, id)
	}
	return s.realms[id], nil
}

func (s *Store) newRealm(c *Client) (protocol.Message, error) {
	id := realm.RealmId(len(s.realms))
	st, err := realm.New(id, s.variant, s.realmOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating realm: %w", err)
	}
	s.realms = append(s.realms, st)
	c.Realms.Insert(id)
	return protocol.Realm{Realm: st.View()}, nil
}

// mutate applies fn to a realm and credits c when fn completes it.
func (s *Store) mutate(c *Client, id realm.RealmId, fn func(*realm.Strategy) error) (protocol.Message, error) {
	st, err := s.realm(id)
	if err != nil {
		return nil, err
	}
	wasDone := st.Done()
	if err := fn(st); err != nil {
		return nil, err
	}
	if !wasDone && st.Done() {
		c.complete(st.Variant())
	}
	return protocol.Realm{Realm: st.View()}, nil
}
