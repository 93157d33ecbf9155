package client

import (
	"github.com/pixil98/go-realms/internal/realm"
	"github.com/pixil98/go-realms/internal/selection"
)

// View is what a presentation layer renders: the last realm received, the
// ids of the client's realms and the cursors inside both. Cursor positions
// live in the containers themselves (Realms, Realm.Island and
// Realm.Expedition.Explorers).
type View struct {
	Realm    realm.Realm
	HasRealm bool
	Realms   selection.List[realm.RealmId]
}

// setRealm replaces the realm while keeping the region and explorer cursors
// when the same realm comes back.
func (v *View) setRealm(r realm.Realm) {
	if v.HasRealm && v.Realm.Id == r.Id {
		if k, _, ok := v.Realm.Island.Current(); ok {
			r.Island.At(k)
		}
		if r.Expedition != nil && v.Realm.Expedition != nil {
			r.Expedition.Explorers.At(v.Realm.Expedition.Explorers.CurrentIndex())
		}
	}
	v.Realm = r
	v.HasRealm = true

	v.Realms.At(v.Realms.IndexFunc(func(id realm.RealmId) bool { return id == r.Id }))
}

// own records a realm created by this client and selects it.
func (v *View) own(id realm.RealmId) {
	if v.Realms.IndexFunc(func(r realm.RealmId) bool { return r == id }) < 0 {
		v.Realms.Insert(id)
	}
	v.Realms.At(v.Realms.IndexFunc(func(r realm.RealmId) bool { return r == id }))
}

func (v *View) setRealms(ids selection.List[realm.RealmId]) {
	cur, ok := v.Realms.Current()
	v.Realms = ids.Clone()
	if ok {
		v.Realms.At(v.Realms.IndexFunc(func(id realm.RealmId) bool { return id == cur }))
	}
}

func (v View) clone() View {
	c := v
	c.Realm = v.Realm.Clone()
	c.Realms = v.Realms.Clone()
	return c
}
