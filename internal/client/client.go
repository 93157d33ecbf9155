// Package client speaks the realms protocol to a server over any byte
// stream and keeps the snapshot a presentation layer renders.
package client

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/pixil98/go-realms/internal/protocol"
	"github.com/pixil98/go-realms/internal/realm"
	"github.com/pixil98/go-realms/internal/selection"
)

var (
	ErrRefused            = errors.New("request refused by server")
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrNotConnected       = errors.New("client has no id; call Bootstrap first")
)

// Client issues one request at a time and waits for its response. It is not
// safe for concurrent use.
type Client struct {
	codec  *protocol.Codec
	closer io.Closer
	id     uuid.UUID
	view   View
}

// New wraps an established connection.
func New(conn io.ReadWriteCloser, opts ...protocol.CodecOpt) *Client {
	return &Client{
		codec:  protocol.NewCodec(conn, opts...),
		closer: conn,
		view:   View{Realms: selection.NewList[realm.RealmId]()},
	}
}

// Id returns the id the server assigned, or uuid.Nil before Bootstrap.
func (c *Client) Id() uuid.UUID {
	return c.id
}

// Bootstrap resumes the identity previous when one is given and registers a
// new one otherwise. The server may hand out a different id than previous.
func (c *Client) Bootstrap(previous uuid.UUID) (uuid.UUID, error) {
	var msg protocol.Message = protocol.Register{}
	if previous != uuid.Nil {
		msg = protocol.Connect{Client: previous}
	}
	resp, err := c.Send(msg)
	if err != nil {
		return uuid.Nil, err
	}
	conn, ok := resp.(protocol.Connect)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Kind())
	}
	c.id = conn.Client
	return c.id, nil
}

// Send delivers msg and returns the server's response as is. It is the
// entry point for intents parsed by a presentation layer.
func (c *Client) Send(msg protocol.Message) (protocol.Message, error) {
	if err := c.codec.WriteRequest(c.id, msg); err != nil {
		return nil, fmt.Errorf("sending %s: %w", msg.Kind(), err)
	}
	resp, err := c.codec.ReadResponse()
	if err != nil {
		return nil, fmt.Errorf("reading response to %s: %w", msg.Kind(), err)
	}
	c.observe(resp)
	return resp, nil
}

func (c *Client) observe(resp protocol.Message) {
	switch r := resp.(type) {
	case protocol.Realm:
		c.view.setRealm(r.Realm)
	case protocol.RealmsList:
		c.view.setRealms(r.Realms)
	}
}

func (c *Client) realmRequest(msg protocol.Message) (realm.Realm, error) {
	if c.id == uuid.Nil {
		return realm.Realm{}, ErrNotConnected
	}
	resp, err := c.Send(msg)
	if err != nil {
		return realm.Realm{}, err
	}
	switch r := resp.(type) {
	case protocol.Realm:
		return r.Realm, nil
	case protocol.Void:
		return realm.Realm{}, fmt.Errorf("%w: %s", ErrRefused, msg.Kind())
	default:
		return realm.Realm{}, fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Kind())
	}
}

func (c *Client) NewRealm() (realm.Realm, error) {
	r, err := c.realmRequest(protocol.RequestNewRealm{})
	if err != nil {
		return r, err
	}
	c.view.own(r.Id)
	return r, nil
}

// Realm fetches a realm. When id does not exist the server creates a new
// realm for this client instead; its id differs from the one asked for.
func (c *Client) Realm(id realm.RealmId) (realm.Realm, error) {
	r, err := c.realmRequest(protocol.RequestRealm{Realm: id})
	if err != nil {
		return r, err
	}
	if r.Id != id {
		c.view.own(r.Id)
	}
	return r, nil
}

func (c *Client) Move(r realm.RealmId, region realm.RegionId, e realm.ExplorerId) (realm.Realm, error) {
	return c.realmRequest(protocol.ChangeRegion(r, region, e))
}

func (c *Client) Act(r realm.RealmId, region realm.RegionId, e realm.ExplorerId, a realm.Action) (realm.Realm, error) {
	return c.realmRequest(protocol.Action(r, region, e, a))
}

func (c *Client) Drop(t protocol.Target, eq realm.Equipment) (realm.Realm, error) {
	return c.realmRequest(protocol.DropEquipment{Target: t, Equipment: eq})
}

func (c *Client) Pick(t protocol.Target, eq realm.Equipment) (realm.Realm, error) {
	return c.realmRequest(protocol.PickEquipment{Target: t, Equipment: eq})
}

func (c *Client) Investigate(t protocol.Target, p realm.Particularity) (realm.Realm, error) {
	return c.realmRequest(protocol.InvestigateParticularity{Target: t, Particularity: p})
}

func (c *Client) Forget(t protocol.Target, p realm.Particularity) (realm.Realm, error) {
	return c.realmRequest(protocol.ForgetParticularity{Target: t, Particularity: p})
}

// RealmsList fetches the ids of the realms this client created.
func (c *Client) RealmsList() ([]realm.RealmId, error) {
	if c.id == uuid.Nil {
		return nil, ErrNotConnected
	}
	resp, err := c.Send(protocol.RequestRealmsList{})
	if err != nil {
		return nil, err
	}
	list, ok := resp.(protocol.RealmsList)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Kind())
	}
	return list.Realms.Items(), nil
}

// Quit ends the session and closes the connection.
func (c *Client) Quit() error {
	resp, err := c.Send(protocol.Quit{})
	closeErr := c.closer.Close()
	if err != nil {
		return err
	}
	if resp.Kind() != protocol.KindQuit {
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Kind())
	}
	return closeErr
}

// View returns a copy of the latest snapshot.
func (c *Client) View() View {
	return c.view.clone()
}
