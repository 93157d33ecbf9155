package server

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-realms/internal/realm"
	"github.com/pixil98/go-realms/internal/selection"
)

// Client is the server side record of a registered client.
type Client struct {
	Id                uuid.UUID
	Connected         bool
	Realms            selection.List[realm.RealmId]
	CompletedVariants []realm.Variant
	LastSeen          time.Time
}

func newClient(id uuid.UUID, now time.Time) *Client {
	return &Client{
		Id:        id,
		Connected: true,
		Realms:    selection.NewList[realm.RealmId](),
		LastSeen:  now,
	}
}

// complete records that the client finished a realm of variant v.
func (c *Client) complete(v realm.Variant) {
	if !slices.Contains(c.CompletedVariants, v) {
		c.CompletedVariants = append(c.CompletedVariants, v)
	}
}
